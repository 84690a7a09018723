package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ReceiptService struct {
	txRunner
	dispatcher        *Dispatcher
	commissionRate    decimal.Decimal
	platformAccountID int64
	l                 *logrus.Entry
}

func NewReceiptService(u uow.UOW, dispatcher *Dispatcher, opts Options) *ReceiptService {
	opts = opts.withDefaults()
	return &ReceiptService{
		txRunner:          txRunner{uow: u, retry: opts.RetryPolicy},
		dispatcher:        dispatcher,
		commissionRate:    opts.CommissionRate,
		platformAccountID: opts.PlatformAccountID,
		l: opts.Logger.WithFields(logrus.Fields{
			"component": "service",
			"module":    "receipt",
		}),
	}
}

type ReceiptResult struct {
	Order *domain.Order
	Group *domain.Group
	// Transactions выплата и комиссия, если это подтверждение завершило группу.
	Transactions []domain.Transaction
	Released     bool
}

// ConfirmReceipt подтверждает получение товара покупателем. Когда все не отмененные заказы группы
// подтверждены, группа и листинг завершаются, а сумма закупки делится на выплату продавцу и комиссию
// платформы. Обе проводки создаются ровно один раз.
func (s *ReceiptService) ConfirmReceipt(ctx context.Context, orderID, buyerID int64) (*ReceiptResult, error) {
	var result *ReceiptResult
	var created []domain.Notification

	err := s.atomically(ctx, "confirming receipt", func(c context.Context, tx uow.TX) error {
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
		if order.BuyerID != buyerID {
			return fmt.Errorf("order %d belongs to another buyer: %w", orderID, domain.ErrForbidden)
		}

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
		case domain.OrderStatusCompleted:
			result = &ReceiptResult{Order: order, Group: group}
			return fmt.Errorf("order %d is completed: %w", orderID, domain.ErrAlreadyProcessed)
		case domain.OrderStatusPaid:
		default:
			return fmt.Errorf("order %d is %s: %w", orderID, order.Status, domain.ErrInvalidTransition)
		}
		if group.Status != domain.GroupStatusPendingDelivery {
			return fmt.Errorf("group %d is %s: %w", group.ID, group.Status, domain.ErrInvalidTransition)
		}

		if order, err = orders.UpdateStatus(c, repoargs.UpdateOrderStatus{
			ID:     orderID,
			Status: domain.OrderStatusCompleted,
		}); err != nil {
			return err //nolint:wrapcheck
		}
		result = &ReceiptResult{Order: order, Group: group}

		groupOrders, err := orders.GetByGroupID(c, group.ID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		for _, o := range groupOrders {
			if o.Status != domain.OrderStatusCompleted && o.Status != domain.OrderStatusCancelled {
				return nil
			}
		}

		created, err = s.release(c, tx, listing, group, result)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			s.l.WithField("orderID", orderID).Debug("receipt already confirmed")
			return result, err
		}
		return nil, err
	}

	s.dispatcher.Publish(ctx, created)
	if result.Released {
		s.l.WithFields(logrus.Fields{"groupID": result.Group.ID}).Info("funds released")
	}
	return result, nil
}

// release завершает группу и листинг и создает проводки выплаты и комиссии.
func (s *ReceiptService) release(
	ctx context.Context,
	tx uow.TX,
	listing *domain.Listing,
	group *domain.Group,
	result *ReceiptResult,
) ([]domain.Notification, error) {
	transactions, err := getRepo[TransactionRepository](tx, repoargs.TransactionRepoName)
	if err != nil {
		return nil, err
	}
	groups, err := getRepo[GroupRepository](tx, repoargs.GroupRepoName)
	if err != nil {
		return nil, err
	}
	listings, err := getRepo[ListingRepository](tx, repoargs.ListingRepoName)
	if err != nil {
		return nil, err
	}

	total, err := domain.OrderTotal(group.TargetQuantity, listing.UnitPrice)
	if err != nil {
		return nil, err
	}
	payout, commission, err := domain.SplitSettlement(total, s.commissionRate)
	if err != nil {
		return nil, err
	}

	for _, t := range []repoargs.CreateTransaction{
		{
			GroupID:       group.ID,
			Type:          domain.TransactionTypePayout,
			BeneficiaryID: group.SellerID,
			Amount:        payout,
			Currency:      listing.Currency,
		},
		{
			GroupID:       group.ID,
			Type:          domain.TransactionTypeCommission,
			BeneficiaryID: s.platformAccountID,
			Amount:        commission,
			Currency:      listing.Currency,
		},
	} {
		created, createErr := transactions.Create(ctx, t)
		if createErr != nil {
			if errors.Is(createErr, domain.ErrDuplicateKey) {
				return nil, fmt.Errorf("%s for group %d: %w", t.Type, group.ID, domain.ErrAlreadyProcessed)
			}
			return nil, createErr //nolint:wrapcheck
		}
		result.Transactions = append(result.Transactions, *created)
	}

	if result.Group, err = groups.UpdateState(ctx, repoargs.UpdateGroupState{
		ID:              group.ID,
		Status:          domain.GroupStatusCompleted,
		LogisticsStatus: group.LogisticsStatus,
	}); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if _, err = listings.UpdateStatus(ctx, listing.ID, domain.ListingStatusCompleted); err != nil {
		return nil, err //nolint:wrapcheck
	}
	result.Released = true

	return s.dispatcher.Dispatch(ctx, tx, Event{
		Kind:       domain.NotificationFundsReleased,
		Recipients: []int64{group.SellerID},
		GroupID:    group.ID,
		ListingID:  listing.ID,
		Amount:     payout,
		Currency:   listing.Currency,
	})
}
