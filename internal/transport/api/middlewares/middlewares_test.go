package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Errors())
	r.GET("/any", AuthRequired(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetInt64(CurrentUserIDKey)})
	})
	r.GET("/seller", AuthRequired(secret), RoleRequired(domain.RoleSeller), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/hook", WebhookSecret([]byte("hook")), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusServiceUnavailable, errors.New("pool exhausted")).SetType(gin.ErrorTypePrivate)
	})
	return r
}

func serve(r *gin.Engine, method, url string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	secret := []byte("secret")
	r := newEngine(secret)

	buyer, err := tokens.GenerateUserJWT(3, domain.RoleBuyer, time.Hour, secret)
	require.NoError(t, err)
	seller, err := tokens.GenerateUserJWT(4, domain.RoleSeller, time.Hour, secret)
	require.NoError(t, err)
	expired, err := tokens.GenerateUserJWT(4, domain.RoleSeller, -time.Hour, secret)
	require.NoError(t, err)

	rec := serve(r, http.MethodGet, "/any", map[string]string{"Authorization": "Bearer " + buyer})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":3}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/any", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodGet, "/any", map[string]string{"Authorization": "Bearer " + expired})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/seller", map[string]string{"Authorization": "Bearer " + buyer})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(r, http.MethodGet, "/seller", map[string]string{"Authorization": "Bearer " + seller})
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWebhookSecret(t *testing.T) {
	r := newEngine(nil)

	rec := serve(r, http.MethodPost, "/hook", map[string]string{WebhookSecretHeader: "hook"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(r, http.MethodPost, "/hook", map[string]string{WebhookSecretHeader: "hoo"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodPost, "/hook", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestErrorsHidesPrivate(t *testing.T) {
	r := newEngine(nil)

	rec := serve(r, http.MethodGet, "/fail", map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"error":"service unavailable"}`, rec.Body.String())
}
