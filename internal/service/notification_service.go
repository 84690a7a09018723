package service

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
)

const defaultInboxLimit uint = 50

type NotificationService struct {
	notificationRepo NotificationRepository
}

func NewNotificationService(u uow.UOW) (*NotificationService, error) {
	repo, err := getDirectRepo[NotificationRepository](u, repoargs.NotificationRepoName)
	if err != nil {
		return nil, err
	}
	return &NotificationService{notificationRepo: repo}, nil
}

// List входящие уведомления пользователя, новые первыми.
func (n *NotificationService) List(ctx context.Context, userID int64, limit uint) ([]domain.Notification, error) {
	if limit == 0 {
		limit = defaultInboxLimit
	}
	notifications, err := n.notificationRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным. Чужое или несуществующее уведомление дает domain.ErrRecordNotFound.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return n.notificationRepo.MarkRead(ctx, id, userID) //nolint:wrapcheck
}

func (n *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return n.notificationRepo.MarkAllRead(ctx, userID) //nolint:wrapcheck
}
