package pgrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `id, created_at, user_id, kind, message, link, is_read`

type NotificationRepository struct {
	conn uow.DBTX
}

func NewNotificationRepository(conn uow.DBTX) *NotificationRepository {
	return &NotificationRepository{conn: conn}
}

// BatchCreate вставляет уведомления одним батчем. fn вызывается для каждой строки в порядке notifications.
func (n *NotificationRepository) BatchCreate(
	ctx context.Context,
	notifications []repoargs.CreateNotification,
	fn repoargs.NotificationBatchQueryRow,
) {
	batch := &pgx.Batch{}
	for _, args := range notifications {
		batch.Queue(`
			INSERT INTO notifications (user_id, kind, message, link)
			VALUES ($1, $2, $3, $4)
			RETURNING `+notificationColumns,
			args.UserID, string(args.Kind), args.Message, args.Link,
		)
	}

	br := n.conn.SendBatch(ctx, batch)
	defer br.Close()

	for i := range notifications {
		notification, err := scanNotification(br.QueryRow())
		fn(i, notification, convertErr(err, "creating notification for user %d", notifications[i].UserID))
	}
}

// GetByUserID уведомления пользователя, новые первыми.
func (n *NotificationRepository) GetByUserID(
	ctx context.Context,
	userID int64,
	limit uint,
) ([]domain.Notification, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := n.conn.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "getting notifications of user %d", userID)
	}
	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		notification, scanErr := scanNotification(row)
		if scanErr != nil {
			return domain.Notification{}, scanErr
		}
		return *notification, nil
	})
	if err != nil {
		return nil, convertErr(err, "scanning notifications of user %d", userID)
	}
	return notifications, nil
}

func (n *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tag, err := n.conn.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return convertErr(err, "marking notification %d read", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "marking notification %d read", id)
	}
	return nil
}

func (n *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	tag, err := n.conn.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, convertErr(err, "marking notifications of user %d read", userID)
	}
	return tag.RowsAffected(), nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var notification domain.Notification
	var kind string
	if err := row.Scan(
		&notification.ID,
		&notification.CreatedAt,
		&notification.UserID,
		&kind,
		&notification.Message,
		&notification.Link,
		&notification.IsRead,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	notification.Kind = domain.NotificationKind(kind)
	return &notification, nil
}
