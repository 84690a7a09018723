package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/sirupsen/logrus"
)

type ListingService struct {
	txRunner
	listingRepo ListingRepository
	dispatcher  *Dispatcher
	currency    string
	l           *logrus.Entry
}

func NewListingService(u uow.UOW, dispatcher *Dispatcher, opts Options) (*ListingService, error) {
	opts = opts.withDefaults()
	listingRepo, err := getDirectRepo[ListingRepository](u, repoargs.ListingRepoName)
	if err != nil {
		return nil, err
	}
	return &ListingService{
		txRunner:    txRunner{uow: u, retry: opts.RetryPolicy},
		listingRepo: listingRepo,
		dispatcher:  dispatcher,
		currency:    opts.Currency,
		l: opts.Logger.WithFields(logrus.Fields{
			"component": "service",
			"module":    "listing",
		}),
	}, nil
}

type CreateListingArgs struct {
	SellerID      int64
	Title         string
	UnitPrice     int64
	TotalQuantity int64
	Currency      string
}

// Create выставляет новую партию. Остаток равен общему количеству, статус available.
func (s *ListingService) Create(ctx context.Context, args CreateListingArgs) (*domain.Listing, error) {
	if args.UnitPrice <= 0 || args.TotalQuantity < 1 {
		return nil, fmt.Errorf("creating listing: %w: price and quantity must be positive", domain.ErrInvalidArgument)
	}
	if _, err := domain.OrderTotal(args.TotalQuantity, args.UnitPrice); err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}
	currency := args.Currency
	if currency == "" {
		currency = s.currency
	}
	listing, err := s.listingRepo.Create(ctx, repoargs.CreateListing{
		SellerID:      args.SellerID,
		Title:         args.Title,
		UnitPrice:     args.UnitPrice,
		Currency:      currency,
		TotalQuantity: args.TotalQuantity,
	})
	if err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return listing, nil
}

// ListAvailable возвращает листинги, к которым можно присоединиться.
func (s *ListingService) ListAvailable(ctx context.Context, limit uint) ([]domain.Listing, error) {
	listings, err := s.listingRepo.ListByStatus(ctx, domain.ListingStatusAvailable, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return listings, nil
}

// Suspend приостанавливает листинг. Открытая группа сбора отменяется вместе с неоплаченными заказами,
// участники получают уведомление.
func (s *ListingService) Suspend(ctx context.Context, listingID, sellerID int64) (*domain.Listing, error) {
	var listing *domain.Listing
	var created []domain.Notification

	err := s.atomically(ctx, "suspending listing", func(c context.Context, tx uow.TX) error {
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

		current, err := listings.FindByIDForUpdate(c, listingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if current.SellerID != sellerID {
			return fmt.Errorf("listing %d belongs to another seller: %w", listingID, domain.ErrForbidden)
		}
		if current.Status != domain.ListingStatusAvailable {
			return fmt.Errorf("listing %d is %s: %w", listingID, current.Status, domain.ErrInvalidTransition)
		}

		var events []Event
		group, err := groups.FindByListingForUpdate(c, listingID, []domain.GroupStatusType{domain.GroupStatusFunding})
		switch {
		case err == nil:
			if _, err = groups.UpdateState(c, repoargs.UpdateGroupState{
				ID:              group.ID,
				Status:          domain.GroupStatusCancelled,
				LogisticsStatus: group.LogisticsStatus,
			}); err != nil {
				return err //nolint:wrapcheck
			}
			if _, err = orders.CancelPendingByGroupID(c, group.ID); err != nil {
				return err //nolint:wrapcheck
			}
			events = append(events, Event{
				Kind:       domain.NotificationGroupCancelled,
				Recipients: group.ParticipantIDs(),
				GroupID:    group.ID,
				ListingID:  listingID,
			})
		case !errors.Is(err, domain.ErrRecordNotFound):
			return err //nolint:wrapcheck
		}

		if listing, err = listings.UpdateStatus(c, listingID, domain.ListingStatusSuspended); err != nil {
			return err //nolint:wrapcheck
		}
		created, err = s.dispatcher.Dispatch(c, tx, events...)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, created)
	return listing, nil
}

// Dispatch продавец отгружает полностью оплаченную партию: группа переходит в pending_delivery со статусом
// логистики packing, листинг - в dispatched. Уведомляются все участники.
func (s *ListingService) Dispatch(ctx context.Context, listingID, sellerID int64) (*domain.Group, error) {
	var group *domain.Group
	var created []domain.Notification

	err := s.atomically(ctx, "dispatching listing", func(c context.Context, tx uow.TX) error {
		listings, err := getRepo[ListingRepository](tx, repoargs.ListingRepoName)
		if err != nil {
			return err
		}
		groups, err := getRepo[GroupRepository](tx, repoargs.GroupRepoName)
		if err != nil {
			return err
		}

		listing, err := listings.FindByIDForUpdate(c, listingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if listing.SellerID != sellerID {
			return fmt.Errorf("listing %d belongs to another seller: %w", listingID, domain.ErrForbidden)
		}
		if listing.Status != domain.ListingStatusPendingDelivery {
			return fmt.Errorf("listing %d is %s: %w", listingID, listing.Status, domain.ErrInvalidTransition)
		}

		funded, err := groups.FindByListingForUpdate(c, listingID, []domain.GroupStatusType{domain.GroupStatusFullyFunded})
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return fmt.Errorf("no fully funded group for listing %d: %w", listingID, domain.ErrInvalidTransition)
			}
			return err //nolint:wrapcheck
		}

		if group, err = groups.UpdateState(c, repoargs.UpdateGroupState{
			ID:              funded.ID,
			Status:          domain.GroupStatusPendingDelivery,
			LogisticsStatus: domain.LogisticsStatusPacking,
		}); err != nil {
			return err //nolint:wrapcheck
		}
		if _, err = listings.UpdateStatus(c, listingID, domain.ListingStatusDispatched); err != nil {
			return err //nolint:wrapcheck
		}

		created, err = s.dispatcher.Dispatch(c, tx, Event{
			Kind:       domain.NotificationDispatched,
			Recipients: group.ParticipantIDs(),
			GroupID:    group.ID,
			ListingID:  listingID,
			Logistics:  group.LogisticsStatus,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, created)
	s.l.WithFields(logrus.Fields{"listingID": listingID, "groupID": group.ID}).Info("listing dispatched")
	return group, nil
}
