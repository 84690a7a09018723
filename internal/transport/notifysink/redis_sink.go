// Package notifysink внешние каналы доставки уведомлений. Запись в ящик пользователя делает сервисный слой,
// здесь только доставка уже сохраненных уведомлений.
package notifysink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultChannelPrefix = "groupbuy:notifications:"
	connectMaxAttempts   = 5
	connectRetryInterval = time.Second
)

// Publisher часть redis.Cmdable, нужная для публикации.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Message тело сообщения в канале.
type Message struct {
	ID        int64                   `json:"id"`
	UserID    int64                   `json:"userId"`
	Kind      domain.NotificationKind `json:"kind"`
	Message   string                  `json:"message"`
	Link      string                  `json:"link,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// RedisSink публикует уведомления в redis pub/sub, канал на каждого пользователя: <prefix><userID>.
type RedisSink struct {
	pub    Publisher
	prefix string
}

func NewRedisSink(pub Publisher, prefix string) *RedisSink {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisSink{pub: pub, prefix: prefix}
}

func (s *RedisSink) Channel(userID int64) string {
	return fmt.Sprintf("%s%d", s.prefix, userID)
}

func (s *RedisSink) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(Message{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      n.Kind,
		Message:   n.Message,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.pub.Publish(ctx, s.Channel(n.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification %d: %w", n.ID, err)
	}
	return nil
}

// Connect создает клиента redis и ждет его готовности, делая несколько попыток.
func Connect(ctx context.Context, addr string, l *logrus.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	var err error
	for attempt := 1; attempt <= connectMaxAttempts; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			l.WithField("addr", addr).Info("connected to redis")
			return rdb, nil
		}
		l.WithError(err).WithField("attempt", attempt).Warn("redis ping failed, retrying")

		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, fmt.Errorf("connect redis: %w", ctx.Err())
		case <-time.After(connectRetryInterval):
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("connect redis after %d attempts: %w", connectMaxAttempts, err)
}
