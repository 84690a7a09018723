package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SellersHandler struct {
	reviewSvs ReviewServicer
}

func NewSellersHandler(reviewSvs ReviewServicer) *SellersHandler {
	return &SellersHandler{reviewSvs: reviewSvs}
}

// Rating GET RouteGroup + SellerRatingRoute. Продавец без отзывов получает нулевой рейтинг.
func (h *SellersHandler) Rating(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	rating, err := h.reviewSvs.GetSellerRating(reqCtx, id)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newRatingResponse(rating))
}
