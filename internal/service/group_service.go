package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GroupService struct {
	txRunner
	groupRepo  GroupRepository
	dispatcher *Dispatcher
	l          *logrus.Entry
}

func NewGroupService(u uow.UOW, dispatcher *Dispatcher, opts Options) (*GroupService, error) {
	opts = opts.withDefaults()
	groupRepo, err := getDirectRepo[GroupRepository](u, repoargs.GroupRepoName)
	if err != nil {
		return nil, err
	}
	return &GroupService{
		txRunner:   txRunner{uow: u, retry: opts.RetryPolicy},
		groupRepo:  groupRepo,
		dispatcher: dispatcher,
		l: opts.Logger.WithFields(logrus.Fields{
			"component": "service",
			"module":    "group",
		}),
	}, nil
}

type CommitArgs struct {
	ListingID int64
	BuyerID   int64
	Quantity  int64
}

type CommitResult struct {
	Group *domain.Group
	// Order заказ покупателя в ожидании оплаты, его ExternalPaymentRef передается платежному шлюзу.
	Order *domain.Order
}

func (s *GroupService) Get(ctx context.Context, id int64) (*domain.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return group, nil
}

// Commit добавляет взнос покупателя в открытую группу листинга, создавая ее при необходимости.
// В той же транзакции создается (или увеличивается) заказ покупателя в статусе pending_payment.
// Если взнос пересекает порог 90%, продавец получает уведомление.
func (s *GroupService) Commit(ctx context.Context, args CommitArgs) (*CommitResult, error) {
	if args.Quantity < 1 {
		return nil, fmt.Errorf("committing: %w: quantity must be at least 1", domain.ErrInvalidArgument)
	}

	var result *CommitResult
	var created []domain.Notification

	err := s.atomically(ctx, "committing", func(c context.Context, tx uow.TX) error {
		result, created = nil, nil

		listings, err := getRepo[ListingRepository](tx, repoargs.ListingRepoName)
		if err != nil {
			return err
		}
		groups, err := getRepo[GroupRepository](tx, repoargs.GroupRepoName)
		if err != nil {
			return err
		}
		orders, err := getRepo[OrderRepository](tx, repoargs.OrderRepoName)
		if err != nil {
			return err
		}

		listing, err := listings.FindByIDForUpdate(c, args.ListingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		switch listing.Status {
		case domain.ListingStatusAvailable:
		case domain.ListingStatusSuspended:
			return fmt.Errorf("listing %d is suspended: %w", listing.ID, domain.ErrNotFound)
		default:
			return fmt.Errorf("listing %d is %s: %w", listing.ID, listing.Status, domain.ErrInsufficientQuantity)
		}
		if args.Quantity > listing.QuantityAvailable {
			return fmt.Errorf(
				"requested %d, available %d: %w",
				args.Quantity, listing.QuantityAvailable, domain.ErrInsufficientQuantity,
			)
		}

		group, err := s.openGroup(c, groups, listing)
		if err != nil {
			return err
		}

		existing, err := orders.FindActiveByBuyerAndGroup(c, args.BuyerID, group.ID)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return err //nolint:wrapcheck
		}
		if existing != nil && existing.Status != domain.OrderStatusPendingPayment {
			return fmt.Errorf("buyer %d already has a %s order %d: %w",
				args.BuyerID, existing.Status, existing.ID, domain.ErrInvalidTransition)
		}

		oldFunded := group.QuantityFunded
		if oldFunded+args.Quantity > group.TargetQuantity {
			return fmt.Errorf(
				"requested %d, remaining in group %d: %w",
				args.Quantity, group.Remaining(), domain.ErrInsufficientQuantity,
			)
		}

		group, err = groups.AddContribution(c, repoargs.AddContribution{
			GroupID:  group.ID,
			BuyerID:  args.BuyerID,
			Quantity: args.Quantity,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		order, err := s.upsertOrder(c, orders, existing, listing, group, args)
		if err != nil {
			return err
		}

		if domain.CrossedThreshold(oldFunded, group.QuantityFunded, group.TargetQuantity) {
			created, err = s.dispatcher.Dispatch(c, tx, Event{
				Kind:       domain.NotificationThreshold90,
				Recipients: []int64{group.SellerID},
				GroupID:    group.ID,
				ListingID:  listing.ID,
			})
			if err != nil {
				return err
			}
		}

		result = &CommitResult{Group: group, Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, created)
	s.l.WithFields(logrus.Fields{
		"groupID": result.Group.ID,
		"buyerID": args.BuyerID,
		"funded":  result.Group.QuantityFunded,
		"target":  result.Group.TargetQuantity,
	}).Debug("commit accepted")
	return result, nil
}

// openGroup возвращает открытую группу листинга или создает новую. Цель новой группы равна текущему остатку листинга.
func (s *GroupService) openGroup(ctx context.Context, groups GroupRepository, listing *domain.Listing) (*domain.Group, error) {
	group, err := groups.FindByListingForUpdate(ctx, listing.ID, []domain.GroupStatusType{domain.GroupStatusFunding})
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err //nolint:wrapcheck
	}

	group, err = groups.Create(ctx, repoargs.CreateGroup{
		ListingID:      listing.ID,
		SellerID:       listing.SellerID,
		TargetQuantity: listing.QuantityAvailable,
	})
	if err != nil {
		// Параллельная транзакция успела открыть группу первой: повторяем операцию целиком.
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("opening group for listing %d: %w", listing.ID, uow.ErrConflict)
		}
		return nil, err //nolint:wrapcheck
	}
	return group, nil
}

func (s *GroupService) upsertOrder(
	ctx context.Context,
	orders OrderRepository,
	existing *domain.Order,
	listing *domain.Listing,
	group *domain.Group,
	args CommitArgs,
) (*domain.Order, error) {
	if existing != nil {
		total, err := domain.OrderTotal(existing.Quantity+args.Quantity, listing.UnitPrice)
		if err != nil {
			return nil, err
		}
		order, err := orders.AddQuantity(ctx, repoargs.AddOrderQuantity{
			ID:         existing.ID,
			Quantity:   args.Quantity,
			TotalPrice: total,
		})
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		return order, nil
	}

	total, err := domain.OrderTotal(args.Quantity, listing.UnitPrice)
	if err != nil {
		return nil, err
	}
	order, err := orders.Create(ctx, repoargs.CreateOrder{
		BuyerID:            args.BuyerID,
		ListingID:          listing.ID,
		GroupID:            group.ID,
		Quantity:           args.Quantity,
		TotalPrice:         total,
		ExternalPaymentRef: uuid.NewString(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("creating order: %w", uow.ErrConflict)
		}
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}
