package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/sirupsen/logrus"
)

// Event доменное событие, о котором нужно уведомить пользователей Recipients.
type Event struct {
	Kind       domain.NotificationKind
	Recipients []int64
	GroupID    int64
	ListingID  int64
	Logistics  domain.LogisticsStatusType
	Amount     int64
	Currency   string
}

// Dispatcher превращает доменные события в уведомления. Состояния не хранит.
//
// Уведомления записываются в той же транзакции, что и переход состояния (Dispatch), а после фиксации
// отправляются во внешний канал (Publish). Ошибки канала только логируются.
type Dispatcher struct {
	sink NotificationSink
	l    *logrus.Entry
}

func NewDispatcher(sink NotificationSink, l *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		sink: sink,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "dispatcher",
		}),
	}
}

// Dispatch сохраняет уведомления для всех получателей событий в транзакции tx и возвращает созданные записи.
func (d *Dispatcher) Dispatch(ctx context.Context, tx uow.TX, events ...Event) ([]domain.Notification, error) {
	var args []repoargs.CreateNotification
	for _, event := range events {
		message, link := describe(event)
		for _, userID := range event.Recipients {
			args = append(args, repoargs.CreateNotification{
				UserID:  userID,
				Kind:    event.Kind,
				Message: message,
				Link:    link,
			})
		}
	}
	if len(args) == 0 {
		return nil, nil
	}

	repo, repoErr := getRepo[NotificationRepository](tx, repoargs.NotificationRepoName)
	if repoErr != nil {
		return nil, repoErr
	}

	created := make([]domain.Notification, 0, len(args))
	var batchErr error
	repo.BatchCreate(ctx, args, func(_ int, n *domain.Notification, err error) {
		if err != nil {
			batchErr = err
			return
		}
		created = append(created, *n)
	})
	if batchErr != nil {
		return nil, fmt.Errorf("dispatching notifications: %w", batchErr)
	}
	return created, nil
}

// Publish отправляет уже сохраненные уведомления во внешний канал.
func (d *Dispatcher) Publish(ctx context.Context, notifications []domain.Notification) {
	if d.sink == nil {
		return
	}
	for _, n := range notifications {
		if err := d.sink.Publish(ctx, n); err != nil {
			d.l.WithError(err).
				WithFields(logrus.Fields{"notificationID": n.ID, "userID": n.UserID}).
				Warn("publish notification")
		}
	}
}

func describe(e Event) (string, string) {
	link := fmt.Sprintf("/groups/%d", e.GroupID)
	switch e.Kind {
	case domain.NotificationThreshold90:
		return fmt.Sprintf("Group buy #%d is over 90%% funded", e.GroupID), link
	case domain.NotificationFullyFunded:
		return fmt.Sprintf("Group buy #%d is fully funded, please dispatch the goods", e.GroupID), link
	case domain.NotificationDispatched:
		return fmt.Sprintf("Group buy #%d has been dispatched and is being packed", e.GroupID), link
	case domain.NotificationLogisticsUpdate:
		return fmt.Sprintf("Group buy #%d delivery status: %s", e.GroupID, e.Logistics), link
	case domain.NotificationFundsReleased:
		return fmt.Sprintf(
			"Funds for group buy #%d released: %s %s",
			e.GroupID, domain.MinorToDecimal(e.Amount).StringFixed(-domain.MinorUnitsExp), e.Currency,
		), link
	case domain.NotificationGroupCancelled:
		return fmt.Sprintf("Group buy #%d was cancelled by the seller", e.GroupID), link
	default:
		return fmt.Sprintf("Group buy #%d was updated", e.GroupID), link
	}
}
