package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Listing партия товара, выставленная продавцом. Цены хранятся в минимальных единицах валюты (центах).
type Listing struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	SellerID          int64
	Title             string
	UnitPrice         int64
	Currency          string
	TotalQuantity     int64
	QuantityAvailable int64
	Status            ListingStatusType
}

// Group запись реестра взносов: один раунд совместной закупки по одному Listing.
type Group struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ListingID       int64
	SellerID        int64
	TargetQuantity  int64
	QuantityFunded  int64
	Participants    map[int64]int64
	Status          GroupStatusType
	LogisticsStatus LogisticsStatusType
}

// ParticipantIDs возвращает отсортированный список id покупателей.
func (g *Group) ParticipantIDs() []int64 {
	ids := make([]int64, 0, len(g.Participants))
	for id := range g.Participants {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ParticipantsSum сумма количеств всех участников. Для согласованной записи всегда равна QuantityFunded.
func (g *Group) ParticipantsSum() int64 {
	var sum int64
	for _, q := range g.Participants {
		sum += q
	}
	return sum
}

// Remaining сколько единиц еще можно собрать.
func (g *Group) Remaining() int64 {
	return g.TargetQuantity - g.QuantityFunded
}

type Order struct {
	ID                 int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	BuyerID            int64
	ListingID          int64
	GroupID            int64
	Quantity           int64
	TotalPrice         int64
	ExternalPaymentRef string
	Status             OrderStatusType
	PaidAt             *time.Time
	CompletedAt        *time.Time
}

// Transaction строка журнала выплат. Создается ровно один раз на пару (GroupID, Type) и больше не меняется.
type Transaction struct {
	ID            int64
	CreatedAt     time.Time
	GroupID       int64
	Type          TransactionType
	BeneficiaryID int64
	Amount        int64
	Currency      string
}

type Notification struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	Kind      NotificationKind
	Message   string
	Link      string
	IsRead    bool
}

type Review struct {
	ID        int64
	CreatedAt time.Time
	OrderID   int64
	SellerID  int64
	BuyerID   int64
	Rating    int
	Comment   string
}

type SellerRating struct {
	SellerID  int64
	UpdatedAt time.Time
	Average   decimal.Decimal
	Count     int64
}

// PaymentEvent запись аудита колбэка платежного шлюза.
type PaymentEvent struct {
	ID                 int64
	ReceivedAt         time.Time
	ExternalPaymentRef string
	OrderID            int64
	Status             PaymentStatusType
	Outcome            string
}
