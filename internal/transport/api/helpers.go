package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка утверждения типа -
// вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	userIDStr, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := userIDStr.(int64)
	if !ok {
		return 0
	}
	return userID
}

// paramID разбирает положительный id из параметра пути. При ошибке запрос прерывается со статусом 400.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid "+name)).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}

// queryLimit разбирает необязательный параметр limit. Ноль оставляет выбор значения сервису.
func queryLimit(c *gin.Context) (uint, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid limit")).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return uint(limit), true
}

// abortWithBindErr ошибки декодирования дают 400, ошибки валидации полей 422.
func abortWithBindErr(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
		return
	}
	_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
}

// abortWithServiceErr переводит ошибку сервиса в http статус. Клиенту уходит текст доменной ошибки,
// полный текст остается в журнале.
func abortWithServiceErr(c *gin.Context, err error) {
	status, public := serviceErrStatus(err)
	if public == nil {
		_ = c.AbortWithError(status, err).SetType(gin.ErrorTypePrivate)
		return
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	_ = c.AbortWithError(status, public).SetType(gin.ErrorTypePublic)
	_ = c.Error(err).SetType(gin.ErrorTypePrivate)
}

func serviceErrStatus(err error) (int, error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusUnprocessableEntity, err
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, domain.ErrInvalidTransition
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusConflict, domain.ErrInsufficientQuantity
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return http.StatusConflict, domain.ErrAlreadyReviewed
	case errors.Is(err, domain.ErrContention):
		return http.StatusServiceUnavailable, domain.ErrContention
	default:
		return http.StatusInternalServerError, nil
	}
}
