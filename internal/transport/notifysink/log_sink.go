package notifysink

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/sirupsen/logrus"
)

// LogSink пишет уведомления в журнал. Используется, когда redis не настроен.
type LogSink struct {
	l *logrus.Entry
}

func NewLogSink(l *logrus.Logger) *LogSink {
	return &LogSink{l: l.WithFields(logrus.Fields{
		"component": "notifysink",
		"module":    "log",
	})}
}

func (s *LogSink) Publish(_ context.Context, n domain.Notification) error {
	s.l.WithFields(logrus.Fields{
		"notificationID": n.ID,
		"userID":         n.UserID,
		"kind":           n.Kind,
	}).Info(n.Message)
	return nil
}
