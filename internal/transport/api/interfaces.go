package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
)

type ListingServicer interface {
	Create(ctx context.Context, args service.CreateListingArgs) (*domain.Listing, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	ListAvailable(ctx context.Context, limit uint) ([]domain.Listing, error)
	Suspend(ctx context.Context, listingID, sellerID int64) (*domain.Listing, error)
	Dispatch(ctx context.Context, listingID, sellerID int64) (*domain.Group, error)
}

type GroupServicer interface {
	Get(ctx context.Context, id int64) (*domain.Group, error)
	Commit(ctx context.Context, args service.CommitArgs) (*service.CommitResult, error)
}

type LogisticsServicer interface {
	SetLogistics(ctx context.Context, args service.SetLogisticsArgs) (*domain.Group, error)
}

type OrderServicer interface {
	GetByBuyerID(ctx context.Context, buyerID int64) ([]domain.Order, error)
}

type ReceiptServicer interface {
	ConfirmReceipt(ctx context.Context, orderID, buyerID int64) (*service.ReceiptResult, error)
}

type ReviewServicer interface {
	SubmitReview(ctx context.Context, args service.SubmitReviewArgs) (*service.ReviewResult, error)
	GetSellerRating(ctx context.Context, sellerID int64) (*domain.SellerRating, error)
}

type NotificationServicer interface {
	List(ctx context.Context, userID int64, limit uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type PaymentServicer interface {
	HandleGatewayCallback(ctx context.Context, args service.PaymentCallbackArgs) (*service.CallbackResult, error)
}
