package repoargs

import "github.com/fsdevblog/groupbuy/internal/domain"

type CreateNotification struct {
	UserID  int64
	Kind    domain.NotificationKind
	Message string
	Link    string
}

// NotificationBatchQueryRow вызывается для каждой строки батч вставки уведомлений.
type NotificationBatchQueryRow func(i int, n *domain.Notification, err error)
