package service

import (
	"testing"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	env *testEnv
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
}

func (s *PaymentServiceTestSuite) TestCallbackOutcomes() {
	t := s.T()
	listing := s.env.createListing(t, 1, 10, 100)
	order := s.env.commit(t, listing.ID, 2, 2).Order

	args := PaymentCallbackArgs{
		ExternalPaymentRef: order.ExternalPaymentRef,
		OrderID:            order.ID,
		Status:             domain.PaymentStatusFailed,
	}
	res, err := s.env.svc.PaymentService.HandleGatewayCallback(t.Context(), args)
	s.Require().NoError(err)
	s.Equal(OutcomeIgnored, res.Outcome)
	s.EqualValues(10, s.env.listing(t, listing.ID).QuantityAvailable)

	args.Status = domain.PaymentStatusSuccessful
	res, err = s.env.svc.PaymentService.HandleGatewayCallback(t.Context(), args)
	s.Require().NoError(err)
	s.Equal(OutcomeSettled, res.Outcome)
	s.Equal(domain.OrderStatusPaid, res.Settle.Order.Status)

	// Повторная доставка колбэка.
	res, err = s.env.svc.PaymentService.HandleGatewayCallback(t.Context(), args)
	s.Require().NoError(err)
	s.Equal(OutcomeAlreadyProcessed, res.Outcome)
	s.EqualValues(8, s.env.listing(t, listing.ID).QuantityAvailable)

	events := s.env.db.PaymentEvents(order.ExternalPaymentRef)
	s.Len(events, 3)
}

func (s *PaymentServiceTestSuite) TestCallbackRejected() {
	t := s.T()
	listing := s.env.createListing(t, 1, 10, 100)
	order := s.env.commit(t, listing.ID, 2, 2).Order

	_, err := s.env.svc.PaymentService.HandleGatewayCallback(t.Context(), PaymentCallbackArgs{
		ExternalPaymentRef: "forged",
		OrderID:            order.ID,
		Status:             domain.PaymentStatusSuccessful,
	})
	s.Require().ErrorIs(err, domain.ErrForbidden)

	events := s.env.db.PaymentEvents("forged")
	s.Require().Len(events, 1)
	s.Contains(events[0].Outcome, "rejected")
}

func (s *PaymentServiceTestSuite) TestCallbackUnknownStatus() {
	_, err := s.env.svc.PaymentService.HandleGatewayCallback(s.T().Context(), PaymentCallbackArgs{
		ExternalPaymentRef: "ref",
		OrderID:            1,
		Status:             "refunded",
	})
	s.Require().ErrorIs(err, domain.ErrInvalidArgument)
}

func (s *PaymentServiceTestSuite) TestOrdersForReconciliation() {
	t := s.T()
	listing := s.env.createListing(t, 1, 10, 100)

	s.env.db.SetClock(func() time.Time { return time.Now().Add(-time.Hour) })
	stale := s.env.commit(t, listing.ID, 2, 1).Order
	paid := s.env.commit(t, listing.ID, 3, 1).Order
	s.env.pay(t, paid)

	s.env.db.SetClock(time.Now)
	s.env.commit(t, listing.ID, 4, 1)

	orders, err := s.env.svc.PaymentService.OrdersForReconciliation(t.Context(), 10)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(stale.ID, orders[0].ID)
}

func (s *PaymentServiceTestSuite) TestReconciliationSkipsDeclinedPayments() {
	t := s.T()
	listing := s.env.createListing(t, 1, 10, 100)

	s.env.db.SetClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	failed := s.env.commit(t, listing.ID, 2, 1).Order
	s.env.db.SetClock(func() time.Time { return time.Now().Add(-time.Hour) })
	cancelled := s.env.commit(t, listing.ID, 3, 1).Order
	lost := s.env.commit(t, listing.ID, 4, 1).Order
	s.env.db.SetClock(time.Now)

	for order, status := range map[*domain.Order]domain.PaymentStatusType{
		failed:    domain.PaymentStatusFailed,
		cancelled: domain.PaymentStatusCancelled,
	} {
		_, err := s.env.svc.PaymentService.HandleGatewayCallback(t.Context(), PaymentCallbackArgs{
			ExternalPaymentRef: order.ExternalPaymentRef,
			OrderID:            order.ID,
			Status:             status,
		})
		s.Require().NoError(err)
	}

	// Отклоненные платежи не занимают место в пачке, поэтому заказ с потерянным колбэком доходит до сверки.
	for range 3 {
		orders, err := s.env.svc.PaymentService.OrdersForReconciliation(t.Context(), 1)
		s.Require().NoError(err)
		s.Require().Len(orders, 1)
		s.Equal(lost.ID, orders[0].ID)
	}

	// Отказ по чужой ссылке не исключает заказ.
	_, err := s.env.svc.PaymentService.HandleGatewayCallback(t.Context(), PaymentCallbackArgs{
		ExternalPaymentRef: "forged",
		OrderID:            lost.ID,
		Status:             domain.PaymentStatusFailed,
	})
	s.Require().NoError(err)
	orders, err := s.env.svc.PaymentService.OrdersForReconciliation(t.Context(), 10)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(lost.ID, orders[0].ID)
}
