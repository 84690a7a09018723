package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct {
	svs PaymentServicer
}

func NewPaymentsHandler(svs PaymentServicer) *PaymentsHandler {
	return &PaymentsHandler{svs: svs}
}

type PaymentCallbackParams struct {
	ExternalPaymentRef string                   `json:"externalPaymentRef" binding:"required,max_bytes=64"`
	OrderID            int64                    `json:"orderId" binding:"required,min=1"`
	Status             domain.PaymentStatusType `json:"status" binding:"required"`
}

type PaymentCallbackResponse struct {
	Outcome string         `json:"outcome"`
	Order   *OrderResponse `json:"order,omitempty"`
}

// Callback POST RouteGroup + PaymentsCallbackRoute. Шлюз повторяет доставку до ответа 2xx, поэтому повтор по уже
// оплаченному заказу отвечает 200. Неизвестный статус дает 400.
func (h *PaymentsHandler) Callback(c *gin.Context) {
	var params PaymentCallbackParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := h.svs.HandleGatewayCallback(reqCtx, service.PaymentCallbackArgs{
		ExternalPaymentRef: params.ExternalPaymentRef,
		OrderID:            params.OrderID,
		Status:             params.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePublic)
			return
		}
		abortWithServiceErr(c, err)
		return
	}

	response := PaymentCallbackResponse{Outcome: res.Outcome}
	if res.Settle != nil && res.Settle.Order != nil {
		order := newOrderResponse(res.Settle.Order)
		response.Order = &order
	}
	c.JSON(http.StatusOK, response)
}
