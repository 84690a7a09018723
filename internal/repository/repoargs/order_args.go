package repoargs

import "github.com/fsdevblog/groupbuy/internal/domain"

type CreateOrder struct {
	BuyerID            int64
	ListingID          int64
	GroupID            int64
	Quantity           int64
	TotalPrice         int64
	ExternalPaymentRef string
}

type AddOrderQuantity struct {
	ID         int64
	Quantity   int64
	TotalPrice int64
}

type UpdateOrderStatus struct {
	ID     int64
	Status domain.OrderStatusType
}
