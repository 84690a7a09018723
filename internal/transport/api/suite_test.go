package api

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/logger"
	"github.com/fsdevblog/groupbuy/internal/transport/api/mocks"
	"github.com/fsdevblog/groupbuy/internal/transport/api/testutils"
	"github.com/fsdevblog/groupbuy/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

const (
	sellerID int64 = 7
	buyerID  int64 = 21
)

// handlerSuite общая обвязка тестов обработчиков: роутер на моках сервисов и токены продавца и покупателя.
type handlerSuite struct {
	suite.Suite
	router        *gin.Engine
	jwtSecret     []byte
	webhookSecret []byte

	listingSvs      *mocks.MockListingServicer
	groupSvs        *mocks.MockGroupServicer
	logisticsSvs    *mocks.MockLogisticsServicer
	orderSvs        *mocks.MockOrderServicer
	receiptSvs      *mocks.MockReceiptServicer
	reviewSvs       *mocks.MockReviewServicer
	notificationSvs *mocks.MockNotificationServicer
	paymentSvs      *mocks.MockPaymentServicer

	sellerToken string
	buyerToken  string
}

func (s *handlerSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.listingSvs = mocks.NewMockListingServicer(mockCtrl)
	s.groupSvs = mocks.NewMockGroupServicer(mockCtrl)
	s.logisticsSvs = mocks.NewMockLogisticsServicer(mockCtrl)
	s.orderSvs = mocks.NewMockOrderServicer(mockCtrl)
	s.receiptSvs = mocks.NewMockReceiptServicer(mockCtrl)
	s.reviewSvs = mocks.NewMockReviewServicer(mockCtrl)
	s.notificationSvs = mocks.NewMockNotificationServicer(mockCtrl)
	s.paymentSvs = mocks.NewMockPaymentServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.webhookSecret = []byte("gateway secret")

	s.router = New(RouterArgs{
		Logger:              logger.New(os.Stdout),
		ListingService:      s.listingSvs,
		GroupService:        s.groupSvs,
		LogisticsService:    s.logisticsSvs,
		OrderService:        s.orderSvs,
		ReceiptService:      s.receiptSvs,
		ReviewService:       s.reviewSvs,
		NotificationService: s.notificationSvs,
		PaymentService:      s.paymentSvs,
		JWTSecretKey:        s.jwtSecret,
		WebhookSecret:       s.webhookSecret,
	})

	var err error
	s.sellerToken, err = tokens.GenerateUserJWT(sellerID, domain.RoleSeller, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	s.buyerToken, err = tokens.GenerateUserJWT(buyerID, domain.RoleBuyer, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
}

type apiRequest struct {
	method  string
	url     string
	token   string
	body    string
	headers map[string]string
}

// do выполняет запрос и возвращает ответ с прочитанным телом.
func (s *handlerSuite) do(req apiRequest) (*http.Response, []byte) {
	reqOpts := []func(*testutils.RequestOptions){testutils.WithBearer(req.token)}
	for k, v := range req.headers {
		reqOpts = append(reqOpts, testutils.WithHeader(k, v))
	}

	res, body, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: req.method,
		URL:    RouteGroup + req.url,
		Body:   req.body,
	}, reqOpts...)
	s.Require().NoError(err)
	return res, body
}

func (s *handlerSuite) decode(body []byte, v any) {
	s.Require().NoError(json.Unmarshal(body, v), string(body))
}

func testGroup(status domain.GroupStatusType) *domain.Group {
	return &domain.Group{
		ID:              3,
		ListingID:       1,
		SellerID:        sellerID,
		TargetQuantity:  100,
		QuantityFunded:  60,
		Participants:    map[int64]int64{buyerID: 60},
		Status:          status,
		LogisticsStatus: domain.LogisticsStatusNone,
	}
}

func testOrder(status domain.OrderStatusType) *domain.Order {
	return &domain.Order{
		ID:                 11,
		BuyerID:            buyerID,
		ListingID:          1,
		GroupID:            3,
		Quantity:           60,
		TotalPrice:         60000,
		ExternalPaymentRef: "b5a4a0e8-7d2f-4d8a-9f57-1c2f0b7d6e11",
		Status:             status,
	}
}

func (s *handlerSuite) tokenFor(id int64, role domain.RoleType) string {
	token, err := tokens.GenerateUserJWT(id, role, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}
