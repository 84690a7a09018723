package service

import (
	"context"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Методы *ForUpdate блокируют строку до конца транзакции (SELECT ... FOR UPDATE).

type ListingRepository interface {
	Create(ctx context.Context, args repoargs.CreateListing) (*domain.Listing, error)
	FindByID(ctx context.Context, id int64) (*domain.Listing, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Listing, error)
	ListByStatus(ctx context.Context, status domain.ListingStatusType, limit uint) ([]domain.Listing, error)
	// DecrementAvailable уменьшает остаток. Если остатка не хватает, возвращает domain.ErrInsufficientQuantity.
	DecrementAvailable(ctx context.Context, id int64, quantity int64) (*domain.Listing, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ListingStatusType) (*domain.Listing, error)
}

type GroupRepository interface {
	Create(ctx context.Context, args repoargs.CreateGroup) (*domain.Group, error)
	FindByID(ctx context.Context, id int64) (*domain.Group, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Group, error)
	// FindByListingForUpdate ищет последнюю запись по листингу в одном из статусов statuses.
	FindByListingForUpdate(
		ctx context.Context,
		listingID int64,
		statuses []domain.GroupStatusType,
	) (*domain.Group, error)
	// AddContribution увеличивает собранное количество и долю участника. Если цель будет превышена,
	// возвращает domain.ErrInsufficientQuantity.
	AddContribution(ctx context.Context, args repoargs.AddContribution) (*domain.Group, error)
	UpdateState(ctx context.Context, args repoargs.UpdateGroupState) (*domain.Group, error)
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	// FindActiveByBuyerAndGroup ищет не отмененный заказ покупателя в группе.
	FindActiveByBuyerAndGroup(ctx context.Context, buyerID, groupID int64) (*domain.Order, error)
	AddQuantity(ctx context.Context, args repoargs.AddOrderQuantity) (*domain.Order, error)
	UpdateStatus(ctx context.Context, args repoargs.UpdateOrderStatus) (*domain.Order, error)
	GetByGroupID(ctx context.Context, groupID int64) ([]domain.Order, error)
	GetByBuyerID(ctx context.Context, buyerID int64) ([]domain.Order, error)
	CancelPendingByGroupID(ctx context.Context, groupID int64) (int64, error)
	// GetPendingCreatedBefore заказы в ожидании оплаты, созданные раньше before, самые старые первыми.
	// Заказы, платеж которых шлюз уже отклонил или отменил, не возвращаются.
	GetPendingCreatedBefore(ctx context.Context, before time.Time, limit uint) ([]domain.Order, error)
}

type TransactionRepository interface {
	// Create возвращает domain.ErrDuplicateKey, если строка с такой парой (GroupID, Type) уже существует.
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	GetByGroupID(ctx context.Context, groupID int64) ([]domain.Transaction, error)
}

type NotificationRepository interface {
	BatchCreate(
		ctx context.Context,
		notifications []repoargs.CreateNotification,
		fn repoargs.NotificationBatchQueryRow,
	)
	GetByUserID(ctx context.Context, userID int64, limit uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type ReviewRepository interface {
	// Create возвращает domain.ErrDuplicateKey, если на заказ уже есть отзыв.
	Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error)
	GetSellerRating(ctx context.Context, sellerID int64) (*domain.SellerRating, error)
	GetSellerRatingForUpdate(ctx context.Context, sellerID int64) (*domain.SellerRating, error)
	SaveSellerRating(ctx context.Context, rating domain.SellerRating) (*domain.SellerRating, error)
}

type PaymentEventRepository interface {
	Create(ctx context.Context, args repoargs.CreatePaymentEvent) (*domain.PaymentEvent, error)
}

// NotificationSink внешний канал доставки уведомлений.
type NotificationSink interface {
	Publish(ctx context.Context, n domain.Notification) error
}
