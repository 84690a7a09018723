package payment

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/fsdevblog/groupbuy/internal/transport/payment/client"
	"github.com/fsdevblog/groupbuy/internal/transport/payment/mocks"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor      *Processor
	mockHTTPClient *mocks.MockClient
	mockService    *mocks.MockServicer
	ctrl           *gomock.Controller
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.mockHTTPClient = mocks.NewMockClient(s.ctrl)
	s.mockService = mocks.NewMockServicer(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = New(s.mockService, "", logger).SetWorkers(2)
	s.processor.client = s.mockHTTPClient
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func pendingOrders() []domain.Order {
	return []domain.Order{
		{ID: 1, ExternalPaymentRef: "ref-1", Status: domain.OrderStatusPendingPayment},
		{ID: 2, ExternalPaymentRef: "ref-2", Status: domain.OrderStatusPendingPayment},
		{ID: 3, ExternalPaymentRef: "ref-3", Status: domain.OrderStatusPendingPayment},
	}
}

func (s *ProcessorTestSuite) TestProcess_NoOrders() {
	s.mockService.EXPECT().
		OrdersForReconciliation(gomock.Any(), s.processor.limitPerIteration).
		Return([]domain.Order{}, nil)

	err := s.processor.process(s.T().Context())

	s.ErrorIs(err, ErrNoOrders)
}

// TestProcess_Terminal окончательные статусы уходят в сервис, pending и ошибки шлюза пропускаются.
func (s *ProcessorTestSuite) TestProcess_Terminal() {
	s.mockService.EXPECT().
		OrdersForReconciliation(gomock.Any(), s.processor.limitPerIteration).
		Return(pendingOrders(), nil)

	s.mockHTTPClient.EXPECT().GetPayment(gomock.Any(), "ref-1").
		Return(&client.Response{ExternalPaymentRef: "ref-1", OrderID: 1, Status: domain.PaymentStatusSuccessful}, nil)
	s.mockHTTPClient.EXPECT().GetPayment(gomock.Any(), "ref-2").
		Return(&client.Response{ExternalPaymentRef: "ref-2", OrderID: 2, Status: domain.PaymentStatusPending}, nil)
	s.mockHTTPClient.EXPECT().GetPayment(gomock.Any(), "ref-3").
		Return(nil, client.NewStatusCodeError(http.StatusInternalServerError, "ref-3"))

	s.mockService.EXPECT().
		HandleGatewayCallback(gomock.Any(), service.PaymentCallbackArgs{
			ExternalPaymentRef: "ref-1",
			OrderID:            1,
			Status:             domain.PaymentStatusSuccessful,
		}).
		Return(&service.CallbackResult{Outcome: service.OutcomeSettled}, nil).
		Times(1)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	s.NoError(s.processor.process(ctx))
}

// TestProcess_UnknownPayment 404 от шлюза значит, что оплату еще не начинали: заказ остается в ожидании.
func (s *ProcessorTestSuite) TestProcess_UnknownPayment() {
	s.mockService.EXPECT().
		OrdersForReconciliation(gomock.Any(), s.processor.limitPerIteration).
		Return(pendingOrders()[:1], nil)
	s.mockHTTPClient.EXPECT().GetPayment(gomock.Any(), "ref-1").
		Return(nil, client.NewStatusCodeError(http.StatusNotFound, "ref-1"))
	s.mockService.EXPECT().HandleGatewayCallback(gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	s.NoError(s.processor.process(ctx))
}

// TestProcess_TooManyRequests после 429 запрос повторяется через Retry-After.
func (s *ProcessorTestSuite) TestProcess_TooManyRequests() {
	orders := pendingOrders()[:1]
	s.mockService.EXPECT().
		OrdersForReconciliation(gomock.Any(), s.processor.limitPerIteration).
		Return(orders, nil)

	gomock.InOrder(
		s.mockHTTPClient.EXPECT().GetPayment(gomock.Any(), "ref-1").
			Return(nil, client.NewTooManyRequestError(10*time.Millisecond)),
		s.mockHTTPClient.EXPECT().GetPayment(gomock.Any(), "ref-1").
			Return(&client.Response{ExternalPaymentRef: "ref-1", OrderID: 1, Status: domain.PaymentStatusCancelled}, nil),
	)
	s.mockService.EXPECT().
		HandleGatewayCallback(gomock.Any(), service.PaymentCallbackArgs{
			ExternalPaymentRef: "ref-1",
			OrderID:            1,
			Status:             domain.PaymentStatusCancelled,
		}).
		Return(&service.CallbackResult{Outcome: service.OutcomeIgnored}, nil)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	s.NoError(s.processor.process(ctx))
}

func (s *ProcessorTestSuite) TestProcess_ServiceError() {
	s.mockService.EXPECT().
		OrdersForReconciliation(gomock.Any(), s.processor.limitPerIteration).
		Return(nil, errors.New("connection refused"))

	err := s.processor.process(s.T().Context())
	s.Require().Error(err)
	s.NotErrorIs(err, ErrNoOrders)
}

func (s *ProcessorTestSuite) TestRun_StopsOnCancel() {
	s.mockService.EXPECT().
		OrdersForReconciliation(gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()
	s.processor.SetIdleInterval(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(s.T().Context())
	done := make(chan struct{})
	go func() {
		s.processor.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("processor did not stop")
	}
}
