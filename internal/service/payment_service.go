package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/sirupsen/logrus"
)

// Исходы обработки колбэка, сохраняемые в PaymentEvent.Outcome.
const (
	OutcomeSettled          = "settled"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeIgnored          = "ignored"
	outcomeRejectedPrefix   = "rejected: "
)

type PaymentService struct {
	txRunner
	orderRepo        OrderRepository
	paymentEventRepo PaymentEventRepository
	dispatcher       *Dispatcher
	reconcileAfter   time.Duration
	l                *logrus.Entry
}

func NewPaymentService(u uow.UOW, dispatcher *Dispatcher, opts Options) (*PaymentService, error) {
	opts = opts.withDefaults()
	orderRepo, err := getDirectRepo[OrderRepository](u, repoargs.OrderRepoName)
	if err != nil {
		return nil, err
	}
	paymentEventRepo, err := getDirectRepo[PaymentEventRepository](u, repoargs.PaymentEventRepoName)
	if err != nil {
		return nil, err
	}
	return &PaymentService{
		txRunner:         txRunner{uow: u, retry: opts.RetryPolicy},
		orderRepo:        orderRepo,
		paymentEventRepo: paymentEventRepo,
		dispatcher:       dispatcher,
		reconcileAfter:   opts.ReconcileAfter,
		l: opts.Logger.WithFields(logrus.Fields{
			"component": "service",
			"module":    "payment",
		}),
	}, nil
}

type SettleResult struct {
	Order *domain.Order
	Group *domain.Group
	// FullyFunded true, если этот платеж закрыл сбор группы.
	FullyFunded bool
}

// SettlePayment подтверждает оплату заказа. Повторный вызов для уже оплаченного заказа возвращает
// текущее состояние и domain.ErrAlreadyProcessed, остаток листинга при этом не меняется.
func (s *PaymentService) SettlePayment(ctx context.Context, orderID int64, externalPaymentRef string) (
	*SettleResult,
	error,
) {
	var result *SettleResult
	var created []domain.Notification

	err := s.atomically(ctx, "settling payment", func(c context.Context, tx uow.TX) error {
		result, created = nil, nil

		orders, err := getRepo[OrderRepository](tx, repoargs.OrderRepoName)
		if err != nil {
			return err
		}
		groups, err := getRepo[GroupRepository](tx, repoargs.GroupRepoName)
		if err != nil {
			return err
		}
		listings, err := getRepo[ListingRepository](tx, repoargs.ListingRepoName)
		if err != nil {
			return err
		}

		order, err := orders.FindByID(c, orderID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if order.ExternalPaymentRef != externalPaymentRef {
			return fmt.Errorf("payment ref mismatch for order %d: %w", orderID, domain.ErrForbidden)
		}

		// Блокировки берутся в одном порядке во всех операциях: листинг, группа, заказ.
		listing, err := listings.FindByIDForUpdate(c, order.ListingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		group, err := groups.FindByIDForUpdate(c, order.GroupID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if order, err = orders.FindByIDForUpdate(c, orderID); err != nil {
			return err //nolint:wrapcheck
		}

		switch order.Status {
		case domain.OrderStatusPaid, domain.OrderStatusCompleted:
			result = &SettleResult{Order: order, Group: group}
			return fmt.Errorf("order %d is %s: %w", orderID, order.Status, domain.ErrAlreadyProcessed)
		case domain.OrderStatusCancelled:
			return fmt.Errorf("order %d is cancelled: %w", orderID, domain.ErrInvalidTransition)
		case domain.OrderStatusPendingPayment:
		}
		if group.Status != domain.GroupStatusFunding {
			return fmt.Errorf("group %d is %s: %w", group.ID, group.Status, domain.ErrInvalidTransition)
		}
		if listing.Status != domain.ListingStatusAvailable {
			return fmt.Errorf("listing %d is %s: %w", listing.ID, listing.Status, domain.ErrInvalidTransition)
		}

		if order, err = orders.UpdateStatus(c, repoargs.UpdateOrderStatus{
			ID:     orderID,
			Status: domain.OrderStatusPaid,
		}); err != nil {
			return err //nolint:wrapcheck
		}
		if listing, err = listings.DecrementAvailable(c, listing.ID, order.Quantity); err != nil {
			return err //nolint:wrapcheck
		}

		result = &SettleResult{Order: order, Group: group}
		if group.QuantityFunded != group.TargetQuantity {
			return nil
		}

		groupOrders, err := orders.GetByGroupID(c, group.ID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		for _, o := range groupOrders {
			if o.Status == domain.OrderStatusPendingPayment {
				return nil
			}
		}

		if group, err = groups.UpdateState(c, repoargs.UpdateGroupState{
			ID:              group.ID,
			Status:          domain.GroupStatusFullyFunded,
			LogisticsStatus: group.LogisticsStatus,
		}); err != nil {
			return err //nolint:wrapcheck
		}
		if _, err = listings.UpdateStatus(c, listing.ID, domain.ListingStatusPendingDelivery); err != nil {
			return err //nolint:wrapcheck
		}
		result.Group = group
		result.FullyFunded = true

		created, err = s.dispatcher.Dispatch(c, tx, Event{
			Kind:       domain.NotificationFullyFunded,
			Recipients: []int64{group.SellerID},
			GroupID:    group.ID,
			ListingID:  listing.ID,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			s.l.WithField("orderID", orderID).Debug("payment already settled")
			return result, err
		}
		return nil, err
	}

	s.dispatcher.Publish(ctx, created)
	s.l.WithFields(logrus.Fields{
		"orderID":     orderID,
		"groupID":     result.Group.ID,
		"fullyFunded": result.FullyFunded,
	}).Info("payment settled")
	return result, nil
}

type PaymentCallbackArgs struct {
	ExternalPaymentRef string
	OrderID            int64
	Status             domain.PaymentStatusType
}

type CallbackResult struct {
	Outcome string
	Settle  *SettleResult
}

// HandleGatewayCallback обрабатывает уведомление платежного шлюза. Каждый колбэк записывается в журнал
// PaymentEvent. Только статус successful приводит к SettlePayment, failed и cancelled лишь фиксируются.
// Повторная доставка безопасна: уже оплаченный заказ дает исход already_processed без ошибки.
func (s *PaymentService) HandleGatewayCallback(ctx context.Context, args PaymentCallbackArgs) (*CallbackResult, error) {
	if !args.Status.IsTerminal() {
		return nil, fmt.Errorf("payment callback: %w: unsupported status %q", domain.ErrInvalidArgument, args.Status)
	}

	var result *CallbackResult
	var settleErr error
	if args.Status == domain.PaymentStatusSuccessful {
		var settle *SettleResult
		settle, settleErr = s.SettlePayment(ctx, args.OrderID, args.ExternalPaymentRef)
		switch {
		case settleErr == nil:
			result = &CallbackResult{Outcome: OutcomeSettled, Settle: settle}
		case errors.Is(settleErr, domain.ErrAlreadyProcessed):
			result = &CallbackResult{Outcome: OutcomeAlreadyProcessed, Settle: settle}
			settleErr = nil
		default:
			result = &CallbackResult{Outcome: outcomeRejectedPrefix + settleErr.Error()}
		}
	} else {
		result = &CallbackResult{Outcome: OutcomeIgnored}
	}

	s.recordEvent(ctx, args, result.Outcome)
	if settleErr != nil {
		return nil, settleErr
	}
	return result, nil
}

func (s *PaymentService) recordEvent(ctx context.Context, args PaymentCallbackArgs, outcome string) {
	_, err := s.paymentEventRepo.Create(ctx, repoargs.CreatePaymentEvent{
		ExternalPaymentRef: args.ExternalPaymentRef,
		OrderID:            args.OrderID,
		Status:             args.Status,
		Outcome:            outcome,
	})
	if err != nil {
		s.l.WithError(err).WithField("orderID", args.OrderID).Error("record payment event")
	}
}

// OrdersForReconciliation возвращает неоплаченные заказы, которые ждут колбэка дольше ReconcileAfter.
func (s *PaymentService) OrdersForReconciliation(ctx context.Context, limit uint) ([]domain.Order, error) {
	orders, err := s.orderRepo.GetPendingCreatedBefore(ctx, time.Now().Add(-s.reconcileAfter), limit)
	if err != nil {
		return nil, fmt.Errorf("orders for reconciliation: %w", err)
	}
	return orders, nil
}
