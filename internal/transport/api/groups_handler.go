package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/gin-gonic/gin"
)

type GroupsHandler struct {
	groupSvs     GroupServicer
	logisticsSvs LogisticsServicer
}

func NewGroupsHandler(groupSvs GroupServicer, logisticsSvs LogisticsServicer) *GroupsHandler {
	return &GroupsHandler{
		groupSvs:     groupSvs,
		logisticsSvs: logisticsSvs,
	}
}

// Show GET RouteGroup + GroupRoute.
func (h *GroupsHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	group, err := h.groupSvs.Get(reqCtx, id)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newGroupResponse(group))
}

type SetLogisticsParams struct {
	Status domain.LogisticsStatusType `json:"status" binding:"required,oneof=packing in_transit at_pickup"`
}

// SetLogistics POST RouteGroup + GroupLogisticsRoute. Повторная установка того же статуса отвечает 200.
func (h *GroupsHandler) SetLogistics(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var params SetLogisticsParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindErr(c, bindErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	group, err := h.logisticsSvs.SetLogistics(reqCtx, service.SetLogisticsArgs{
		GroupID: id,
		ActorID: getUserIDFromContext(c),
		Status:  params.Status,
	})
	if err != nil && !(errors.Is(err, domain.ErrAlreadyProcessed) && group != nil) {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newGroupResponse(group))
}
