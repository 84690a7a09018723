package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/internal/service/mocks"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	uowmocks "github.com/fsdevblog/groupbuy/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	tx         *uowmocks.MockTX
	repo       *mocks.MockNotificationRepository
	sink       *mocks.MockNotificationSink
	dispatcher *Dispatcher
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tx = uowmocks.NewMockTX(s.ctrl)
	s.repo = mocks.NewMockNotificationRepository(s.ctrl)
	s.sink = mocks.NewMockNotificationSink(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	s.dispatcher = NewDispatcher(s.sink, logger)
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// batchCreate эмулирует успешную батч вставку, присваивая id по порядку.
func batchCreate(_ context.Context, args []repoargs.CreateNotification, fn repoargs.NotificationBatchQueryRow) {
	for i, a := range args {
		fn(i, &domain.Notification{ID: int64(i + 1), UserID: a.UserID, Kind: a.Kind, Message: a.Message, Link: a.Link}, nil)
	}
}

func (s *DispatcherTestSuite) TestDispatchFansOutToRecipients() {
	s.tx.EXPECT().Get(uow.RepositoryName(repoargs.NotificationRepoName)).Return(s.repo, nil)
	s.repo.EXPECT().
		BatchCreate(gomock.Any(), gomock.Len(3), gomock.Any()).
		DoAndReturn(batchCreate)

	created, err := s.dispatcher.Dispatch(s.T().Context(), s.tx,
		Event{Kind: domain.NotificationLogisticsUpdate, Recipients: []int64{1, 2}, GroupID: 5,
			Logistics: domain.LogisticsStatusInTransit},
		Event{Kind: domain.NotificationFundsReleased, Recipients: []int64{9}, GroupID: 5,
			Amount: 90000, Currency: "USD"},
	)
	s.Require().NoError(err)
	s.Require().Len(created, 3)
	s.Equal("Group buy #5 delivery status: in_transit", created[0].Message)
	s.Equal("/groups/5", created[0].Link)
	s.Equal(int64(9), created[2].UserID)
	s.Equal("Funds for group buy #5 released: 900.00 USD", created[2].Message)
}

func (s *DispatcherTestSuite) TestDispatchWithoutRecipients() {
	s.tx.EXPECT().Get(gomock.Any()).Times(0)

	created, err := s.dispatcher.Dispatch(s.T().Context(), s.tx, Event{Kind: domain.NotificationDispatched})
	s.Require().NoError(err)
	s.Empty(created)
}

func (s *DispatcherTestSuite) TestDispatchBatchError() {
	batchErr := errors.New("insert failed")
	s.tx.EXPECT().Get(uow.RepositoryName(repoargs.NotificationRepoName)).Return(s.repo, nil)
	s.repo.EXPECT().
		BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ []repoargs.CreateNotification, fn repoargs.NotificationBatchQueryRow) {
			fn(0, nil, batchErr)
		})

	_, err := s.dispatcher.Dispatch(s.T().Context(), s.tx,
		Event{Kind: domain.NotificationThreshold90, Recipients: []int64{1}})
	s.Require().ErrorIs(err, batchErr)
}

func (s *DispatcherTestSuite) TestPublishSwallowsSinkErrors() {
	notifications := []domain.Notification{{ID: 1, UserID: 1}, {ID: 2, UserID: 2}}
	s.sink.EXPECT().Publish(gomock.Any(), notifications[0]).Return(errors.New("redis down"))
	s.sink.EXPECT().Publish(gomock.Any(), notifications[1]).Return(nil)

	s.dispatcher.Publish(s.T().Context(), notifications)
}

func (s *DispatcherTestSuite) TestPublishWithoutSink() {
	dispatcher := NewDispatcher(nil, logrus.New())
	dispatcher.Publish(s.T().Context(), []domain.Notification{{ID: 1}})
}
