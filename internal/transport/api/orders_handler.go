package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	orderSvs   OrderServicer
	receiptSvs ReceiptServicer
	reviewSvs  ReviewServicer
}

func NewOrdersHandler(orderSvs OrderServicer, receiptSvs ReceiptServicer, reviewSvs ReviewServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs:   orderSvs,
		receiptSvs: receiptSvs,
		reviewSvs:  reviewSvs,
	}
}

// Index GET RouteGroup + OrdersRoute.
func (o *OrdersHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()
	orders, err := o.orderSvs.GetByBuyerID(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	var response = make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmReceipt POST RouteGroup + OrderReceiptRoute. Повторное подтверждение отвечает 200 с текущим состоянием.
func (o *OrdersHandler) ConfirmReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := o.receiptSvs.ConfirmReceipt(reqCtx, id, getUserIDFromContext(c))
	alreadyProcessed := errors.Is(err, domain.ErrAlreadyProcessed) && res != nil
	if err != nil && !alreadyProcessed {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, newReceiptResponse(res, alreadyProcessed))
}

type ReviewParams struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max_bytes=2000"`
}

// Review POST RouteGroup + OrderReviewRoute.
func (o *OrdersHandler) Review(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var params ReviewParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindErr(c, bindErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := o.reviewSvs.SubmitReview(reqCtx, service.SubmitReviewArgs{
		OrderID: id,
		BuyerID: getUserIDFromContext(c),
		Rating:  params.Rating,
		Comment: params.Comment,
	})
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, ReviewResponse{
		ID:      res.Review.ID,
		OrderID: res.Review.OrderID,
		Rating:  res.Review.Rating,
		Comment: res.Review.Comment,
		Seller:  newRatingResponse(res.Rating),
	})
}
