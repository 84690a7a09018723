package api

import (
	"sync"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup                = "/api"
	ListingsRoute             = "/listings"
	ListingRoute              = "/listings/:id"
	ListingSuspendRoute       = "/listings/:id/suspend"
	ListingDispatchRoute      = "/listings/:id/dispatch"
	ListingCommitRoute        = "/listings/:id/commit"
	GroupRoute                = "/groups/:id"
	GroupLogisticsRoute       = "/groups/:id/logistics"
	OrdersRoute               = "/orders"
	OrderReceiptRoute         = "/orders/:id/receipt"
	OrderReviewRoute          = "/orders/:id/review"
	SellerRatingRoute         = "/sellers/:id/rating"
	NotificationsRoute        = "/notifications"
	NotificationReadRoute     = "/notifications/:id/read"
	NotificationsReadAllRoute = "/notifications/read-all"
	PaymentsCallbackRoute     = "/payments/callback"
)

type RouterArgs struct {
	Logger              *logrus.Logger
	ListingService      ListingServicer
	GroupService        GroupServicer
	LogisticsService    LogisticsServicer
	OrderService        OrderServicer
	ReceiptService      ReceiptServicer
	ReviewService       ReviewServicer
	NotificationService NotificationServicer
	PaymentService      PaymentServicer
	JWTSecretKey        []byte
	WebhookSecret       []byte
}

var registerValidatorsOnce sync.Once

func New(args RouterArgs) *gin.Engine {
	registerValidatorsOnce.Do(func() {
		if err := registerValidators(); err != nil && args.Logger != nil {
			args.Logger.WithError(err).Error("register validators")
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	listingsHandler := NewListingsHandler(args.ListingService, args.GroupService)
	groupsHandler := NewGroupsHandler(args.GroupService, args.LogisticsService)
	ordersHandler := NewOrdersHandler(args.OrderService, args.ReceiptService, args.ReviewService)
	sellersHandler := NewSellersHandler(args.ReviewService)
	notificationsHandler := NewNotificationsHandler(args.NotificationService)
	paymentsHandler := NewPaymentsHandler(args.PaymentService)

	api := r.Group(RouteGroup)

	// вебхук шлюза аутентифицируется общим секретом, а не JWT.
	api.POST(PaymentsCallbackRoute, middlewares.WebhookSecret(args.WebhookSecret), paymentsHandler.Callback)

	authed := api.Group("", middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	seller := middlewares.RoleRequired(domain.RoleSeller)
	buyer := middlewares.RoleRequired(domain.RoleBuyer)

	authed.GET(ListingsRoute, listingsHandler.Index)
	authed.GET(ListingRoute, listingsHandler.Show)
	authed.POST(ListingsRoute, seller, listingsHandler.Create)
	authed.POST(ListingSuspendRoute, seller, listingsHandler.Suspend)
	authed.POST(ListingDispatchRoute, seller, listingsHandler.Dispatch)
	authed.POST(ListingCommitRoute, buyer, listingsHandler.Commit)

	authed.GET(GroupRoute, groupsHandler.Show)
	authed.POST(GroupLogisticsRoute, seller, groupsHandler.SetLogistics)

	authed.GET(OrdersRoute, buyer, ordersHandler.Index)
	authed.POST(OrderReceiptRoute, buyer, ordersHandler.ConfirmReceipt)
	authed.POST(OrderReviewRoute, buyer, ordersHandler.Review)

	authed.GET(SellerRatingRoute, sellersHandler.Rating)

	authed.GET(NotificationsRoute, notificationsHandler.Index)
	authed.POST(NotificationsReadAllRoute, notificationsHandler.MarkAllRead)
	authed.POST(NotificationReadRoute, notificationsHandler.MarkRead)
	return r
}
