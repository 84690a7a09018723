package notifysink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	payload, _ := message.([]byte)
	f.msgs = append(f.msgs, published{channel: channel, payload: payload})
	return redis.NewIntResult(1, f.err)
}

func TestRedisSinkPublish(t *testing.T) {
	pub := new(fakePublisher)
	sink := NewRedisSink(pub, "")

	n := domain.Notification{
		ID:      int64(gofakeit.IntRange(1, 1000)),
		UserID:  42,
		Kind:    domain.NotificationFundsReleased,
		Message: gofakeit.Sentence(6),
		Link:    "/api/groups/3",
	}
	require.NoError(t, sink.Publish(t.Context(), n))

	require.Len(t, pub.msgs, 1)
	require.Equal(t, "groupbuy:notifications:42", pub.msgs[0].channel)

	var got Message
	require.NoError(t, json.Unmarshal(pub.msgs[0].payload, &got))
	require.Equal(t, n.ID, got.ID)
	require.Equal(t, n.Kind, got.Kind)
	require.Equal(t, n.Message, got.Message)
}

func TestRedisSinkPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection reset")}
	sink := NewRedisSink(pub, "custom:")

	err := sink.Publish(t.Context(), domain.Notification{ID: 1, UserID: 2})
	require.Error(t, err)
	require.Equal(t, "custom:2", pub.msgs[0].channel)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(new(logrus.JSONFormatter))

	require.NoError(t, NewLogSink(l).Publish(t.Context(), domain.Notification{
		ID:      5,
		UserID:  9,
		Kind:    domain.NotificationThreshold90,
		Message: "90% reached",
	}))
	require.Contains(t, buf.String(), `"kind":"threshold_90"`)
	require.Contains(t, buf.String(), "90% reached")
}
