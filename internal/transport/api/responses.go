package api

import (
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
)

// Денежные суммы отдаются строкой с двумя знаками после точки, чтобы клиенты не теряли точность на float.

func money(amount int64) string {
	return domain.MinorToDecimal(amount).StringFixed(2)
}

type ListingResponse struct {
	ID                int64                    `json:"id"`
	SellerID          int64                    `json:"sellerId"`
	Title             string                   `json:"title"`
	UnitPrice         string                   `json:"unitPrice"`
	Currency          string                   `json:"currency"`
	TotalQuantity     int64                    `json:"totalQuantity"`
	QuantityAvailable int64                    `json:"quantityAvailable"`
	Status            domain.ListingStatusType `json:"status"`
	CreatedAt         time.Time                `json:"createdAt"`
}

func newListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:                l.ID,
		SellerID:          l.SellerID,
		Title:             l.Title,
		UnitPrice:         money(l.UnitPrice),
		Currency:          l.Currency,
		TotalQuantity:     l.TotalQuantity,
		QuantityAvailable: l.QuantityAvailable,
		Status:            l.Status,
		CreatedAt:         l.CreatedAt,
	}
}

type ParticipantResponse struct {
	BuyerID  int64 `json:"buyerId"`
	Quantity int64 `json:"quantity"`
}

type GroupResponse struct {
	ID              int64                      `json:"id"`
	ListingID       int64                      `json:"listingId"`
	SellerID        int64                      `json:"sellerId"`
	TargetQuantity  int64                      `json:"targetQuantity"`
	QuantityFunded  int64                      `json:"quantityFunded"`
	Status          domain.GroupStatusType     `json:"status"`
	LogisticsStatus domain.LogisticsStatusType `json:"logisticsStatus"`
	Participants    []ParticipantResponse      `json:"participants"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

func newGroupResponse(g *domain.Group) GroupResponse {
	participants := make([]ParticipantResponse, 0, len(g.Participants))
	for _, buyerID := range g.ParticipantIDs() {
		participants = append(participants, ParticipantResponse{BuyerID: buyerID, Quantity: g.Participants[buyerID]})
	}
	return GroupResponse{
		ID:              g.ID,
		ListingID:       g.ListingID,
		SellerID:        g.SellerID,
		TargetQuantity:  g.TargetQuantity,
		QuantityFunded:  g.QuantityFunded,
		Status:          g.Status,
		LogisticsStatus: g.LogisticsStatus,
		Participants:    participants,
		CreatedAt:       g.CreatedAt,
	}
}

type OrderResponse struct {
	ID                 int64                  `json:"id"`
	ListingID          int64                  `json:"listingId"`
	GroupID            int64                  `json:"groupId"`
	Quantity           int64                  `json:"quantity"`
	TotalPrice         string                 `json:"totalPrice"`
	ExternalPaymentRef string                 `json:"externalPaymentRef"`
	Status             domain.OrderStatusType `json:"status"`
	CreatedAt          time.Time              `json:"createdAt"`
	PaidAt             *time.Time             `json:"paidAt,omitempty"`
	CompletedAt        *time.Time             `json:"completedAt,omitempty"`
}

func newOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		ListingID:          o.ListingID,
		GroupID:            o.GroupID,
		Quantity:           o.Quantity,
		TotalPrice:         money(o.TotalPrice),
		ExternalPaymentRef: o.ExternalPaymentRef,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		PaidAt:             o.PaidAt,
		CompletedAt:        o.CompletedAt,
	}
}

type TransactionResponse struct {
	Type          domain.TransactionType `json:"type"`
	BeneficiaryID int64                  `json:"beneficiaryId"`
	Amount        string                 `json:"amount"`
	Currency      string                 `json:"currency"`
}

type CommitResponse struct {
	Group GroupResponse `json:"group"`
	Order OrderResponse `json:"order"`
}

type ReceiptResponse struct {
	Order            OrderResponse         `json:"order"`
	Group            GroupResponse         `json:"group"`
	Released         bool                  `json:"released"`
	AlreadyProcessed bool                  `json:"alreadyProcessed"`
	Transactions     []TransactionResponse `json:"transactions,omitempty"`
}

func newReceiptResponse(r *service.ReceiptResult, alreadyProcessed bool) ReceiptResponse {
	res := ReceiptResponse{
		Order:            newOrderResponse(r.Order),
		Group:            newGroupResponse(r.Group),
		Released:         r.Released,
		AlreadyProcessed: alreadyProcessed,
	}
	for _, t := range r.Transactions {
		res.Transactions = append(res.Transactions, TransactionResponse{
			Type:          t.Type,
			BeneficiaryID: t.BeneficiaryID,
			Amount:        money(t.Amount),
			Currency:      t.Currency,
		})
	}
	return res
}

type NotificationResponse struct {
	ID        int64                   `json:"id"`
	Kind      domain.NotificationKind `json:"kind"`
	Message   string                  `json:"message"`
	Link      string                  `json:"link,omitempty"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

type RatingResponse struct {
	SellerID int64  `json:"sellerId"`
	Average  string `json:"average"`
	Count    int64  `json:"count"`
}

func newRatingResponse(r *domain.SellerRating) RatingResponse {
	return RatingResponse{
		SellerID: r.SellerID,
		Average:  r.Average.StringFixed(2),
		Count:    r.Count,
	}
}

type ReviewResponse struct {
	ID      int64          `json:"id"`
	OrderID int64          `json:"orderId"`
	Rating  int            `json:"rating"`
	Comment string         `json:"comment,omitempty"`
	Seller  RatingResponse `json:"seller"`
}
