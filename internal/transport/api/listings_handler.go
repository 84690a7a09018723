package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ListingsHandler struct {
	listingSvs ListingServicer
	groupSvs   GroupServicer
}

func NewListingsHandler(listingSvs ListingServicer, groupSvs GroupServicer) *ListingsHandler {
	return &ListingsHandler{
		listingSvs: listingSvs,
		groupSvs:   groupSvs,
	}
}

type CreateListingParams struct {
	Title         string          `json:"title" binding:"required,max_bytes=255"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalQuantity int64           `json:"totalQuantity" binding:"required,min=1"`
	Currency      string          `json:"currency" binding:"omitempty,currency"`
}

// Create POST RouteGroup + ListingsRoute.
func (h *ListingsHandler) Create(c *gin.Context) {
	var params CreateListingParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindErr(c, bindErr)
		return
	}

	unitPrice, err := domain.DecimalToMinor(params.UnitPrice)
	if err != nil || unitPrice <= 0 {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("invalid unit price")).
			SetType(gin.ErrorTypePublic)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	listing, err := h.listingSvs.Create(reqCtx, service.CreateListingArgs{
		SellerID:      getUserIDFromContext(c),
		Title:         params.Title,
		UnitPrice:     unitPrice,
		TotalQuantity: params.TotalQuantity,
		Currency:      params.Currency,
	})
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, newListingResponse(listing))
}

// Show GET RouteGroup + ListingRoute.
func (h *ListingsHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	listing, err := h.listingSvs.Get(reqCtx, id)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newListingResponse(listing))
}

// Index GET RouteGroup + ListingsRoute. Только листинги в статусе available.
func (h *ListingsHandler) Index(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	listings, err := h.listingSvs.ListAvailable(reqCtx, limit)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	response := make([]ListingResponse, len(listings))
	for i := range listings {
		response[i] = newListingResponse(&listings[i])
	}
	c.JSON(http.StatusOK, response)
}

// Suspend POST RouteGroup + ListingSuspendRoute.
func (h *ListingsHandler) Suspend(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	listing, err := h.listingSvs.Suspend(reqCtx, id, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newListingResponse(listing))
}

// Dispatch POST RouteGroup + ListingDispatchRoute.
func (h *ListingsHandler) Dispatch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	group, err := h.listingSvs.Dispatch(reqCtx, id, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newGroupResponse(group))
}

type CommitParams struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// Commit POST RouteGroup + ListingCommitRoute. Покупатель присоединяется к открытой группе листинга.
func (h *ListingsHandler) Commit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var params CommitParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindErr(c, bindErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := h.groupSvs.Commit(reqCtx, service.CommitArgs{
		ListingID: id,
		BuyerID:   getUserIDFromContext(c),
		Quantity:  params.Quantity,
	})
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, CommitResponse{
		Group: newGroupResponse(res.Group),
		Order: newOrderResponse(res.Order),
	})
}
