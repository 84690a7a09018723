package memrepo

import (
	"cmp"
	"context"
	"slices"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type NotificationRepository struct {
	s store
}

func (n *NotificationRepository) BatchCreate(
	_ context.Context,
	notifications []repoargs.CreateNotification,
	fn repoargs.NotificationBatchQueryRow,
) {
	created := make([]domain.Notification, 0, len(notifications))
	err := n.s.write(func(st *state) error {
		now := n.s.clock()
		for _, args := range notifications {
			notification := domain.Notification{
				ID:        st.nextID("notifications"),
				CreatedAt: now,
				UserID:    args.UserID,
				Kind:      args.Kind,
				Message:   args.Message,
				Link:      args.Link,
			}
			st.notifications[notification.ID] = notification
			created = append(created, notification)
		}
		return nil
	})
	for i := range notifications {
		if err != nil {
			fn(i, nil, err)
			continue
		}
		fn(i, &created[i], nil)
	}
}

func (n *NotificationRepository) GetByUserID(_ context.Context, userID int64, limit uint) ([]domain.Notification, error) {
	var notifications []domain.Notification
	_ = n.s.read(func(st *state) error {
		for _, notification := range st.notifications {
			if notification.UserID == userID {
				notifications = append(notifications, notification)
			}
		}
		return nil
	})
	slices.SortFunc(notifications, func(a, b domain.Notification) int { return cmp.Compare(b.ID, a.ID) })
	return truncate(notifications, limit), nil
}

func (n *NotificationRepository) MarkRead(_ context.Context, id, userID int64) error {
	return n.s.write(func(st *state) error {
		notification, ok := st.notifications[id]
		if !ok || notification.UserID != userID {
			return notFound("notification", id)
		}
		notification.IsRead = true
		st.notifications[id] = notification
		return nil
	})
}

func (n *NotificationRepository) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var marked int64
	err := n.s.write(func(st *state) error {
		for id, notification := range st.notifications {
			if notification.UserID == userID && !notification.IsRead {
				notification.IsRead = true
				st.notifications[id] = notification
				marked++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}
