package service

import (
	"fmt"
	"io"
	"time"

	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultReconcileAfter = 5 * time.Minute

// Options общие настройки сервисов.
type Options struct {
	RetryPolicy uow.RetryPolicy
	// CommissionRate доля платформы. Нулевая ставка допустима: вся сумма уходит продавцу.
	CommissionRate    decimal.Decimal
	PlatformAccountID int64
	Currency          string
	// ReconcileAfter через сколько после создания неоплаченный заказ попадает в сверку со шлюзом.
	ReconcileAfter time.Duration
	Sink           NotificationSink
	Logger         *logrus.Logger
}

func (o Options) withDefaults() Options {
	if o.RetryPolicy.MaxAttempts == 0 {
		o.RetryPolicy = uow.DefaultRetryPolicy()
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
	if o.ReconcileAfter <= 0 {
		o.ReconcileAfter = defaultReconcileAfter
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
		o.Logger.SetOutput(io.Discard)
	}
	return o
}

type AppServices struct {
	ListingService      *ListingService
	GroupService        *GroupService
	PaymentService      *PaymentService
	LogisticsService    *LogisticsService
	ReceiptService      *ReceiptService
	ReviewService       *ReviewService
	OrderService        *OrderService
	NotificationService *NotificationService
}

func Factory(unitOfWork uow.UOW, opts Options) (*AppServices, error) {
	opts = opts.withDefaults()
	dispatcher := NewDispatcher(opts.Sink, opts.Logger)

	listingService, err := NewListingService(unitOfWork, dispatcher, opts)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}
	groupService, err := NewGroupService(unitOfWork, dispatcher, opts)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}
	paymentService, err := NewPaymentService(unitOfWork, dispatcher, opts)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}
	logisticsService := NewLogisticsService(unitOfWork, dispatcher, opts)
	receiptService := NewReceiptService(unitOfWork, dispatcher, opts)
	reviewService, err := NewReviewService(unitOfWork, opts)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}
	orderService, err := NewOrderService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}
	notificationService, err := NewNotificationService(unitOfWork)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	return &AppServices{
		ListingService:      listingService,
		GroupService:        groupService,
		PaymentService:      paymentService,
		LogisticsService:    logisticsService,
		ReceiptService:      receiptService,
		ReviewService:       reviewService,
		OrderService:        orderService,
		NotificationService: notificationService,
	}, nil
}
