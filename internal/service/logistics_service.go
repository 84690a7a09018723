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

type LogisticsService struct {
	txRunner
	dispatcher *Dispatcher
	l          *logrus.Entry
}

func NewLogisticsService(u uow.UOW, dispatcher *Dispatcher, opts Options) *LogisticsService {
	opts = opts.withDefaults()
	return &LogisticsService{
		txRunner:   txRunner{uow: u, retry: opts.RetryPolicy},
		dispatcher: dispatcher,
		l: opts.Logger.WithFields(logrus.Fields{
			"component": "service",
			"module":    "logistics",
		}),
	}
}

type SetLogisticsArgs struct {
	GroupID int64
	ActorID int64
	Status  domain.LogisticsStatusType
}

// SetLogistics выставляет статус доставки группы. Допустим любой из трех статусов в любом порядке,
// но только пока группа в pending_delivery. Повторная установка текущего статуса возвращает
// domain.ErrAlreadyProcessed вместе с группой.
func (s *LogisticsService) SetLogistics(ctx context.Context, args SetLogisticsArgs) (*domain.Group, error) {
	if !args.Status.IsSettable() {
		return nil, fmt.Errorf("setting logistics: unknown status %q: %w", args.Status, domain.ErrInvalidTransition)
	}

	var group *domain.Group
	var created []domain.Notification

	err := s.atomically(ctx, "setting logistics", func(c context.Context, tx uow.TX) error {
		group, created = nil, nil

		groups, err := getRepo[GroupRepository](tx, repoargs.GroupRepoName)
		if err != nil {
			return err
		}
		current, err := groups.FindByIDForUpdate(c, args.GroupID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if current.SellerID != args.ActorID {
			return fmt.Errorf("group %d belongs to another seller: %w", args.GroupID, domain.ErrForbidden)
		}
		if current.Status != domain.GroupStatusPendingDelivery {
			return fmt.Errorf("group %d is %s: %w", args.GroupID, current.Status, domain.ErrInvalidTransition)
		}
		if current.LogisticsStatus == args.Status {
			group = current
			return fmt.Errorf("group %d is already %s: %w", args.GroupID, args.Status, domain.ErrAlreadyProcessed)
		}

		if group, err = groups.UpdateState(c, repoargs.UpdateGroupState{
			ID:              current.ID,
			Status:          current.Status,
			LogisticsStatus: args.Status,
		}); err != nil {
			return err //nolint:wrapcheck
		}

		created, err = s.dispatcher.Dispatch(c, tx, Event{
			Kind:       domain.NotificationLogisticsUpdate,
			Recipients: group.ParticipantIDs(),
			GroupID:    group.ID,
			ListingID:  group.ListingID,
			Logistics:  group.LogisticsStatus,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			s.l.WithField("groupID", args.GroupID).Debug("logistics status unchanged")
			return group, err
		}
		return nil, err
	}

	s.dispatcher.Publish(ctx, created)
	s.l.WithFields(logrus.Fields{"groupID": group.ID, "logistics": group.LogisticsStatus}).Info("logistics updated")
	return group, nil
}
