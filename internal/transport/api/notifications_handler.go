package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct {
	svs NotificationServicer
}

func NewNotificationsHandler(svs NotificationServicer) *NotificationsHandler {
	return &NotificationsHandler{svs: svs}
}

// Index GET RouteGroup + NotificationsRoute.
func (h *NotificationsHandler) Index(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	notifications, err := h.svs.List(reqCtx, getUserIDFromContext(c), limit)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	response := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

// MarkRead POST RouteGroup + NotificationReadRoute.
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.MarkRead(reqCtx, id, getUserIDFromContext(c)); err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

// MarkAllRead POST RouteGroup + NotificationsReadAllRoute.
func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	updated, err := h.svs.MarkAllRead(reqCtx, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
