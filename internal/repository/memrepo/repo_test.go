package memrepo

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	db *DB
	s  store
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db = NewDB()
	s.s = &directStore{db: s.db}
}

func (s *RepositoryTestSuite) TestListingDecrementBelowZero() {
	repo := &ListingRepository{s: s.s}
	listing, err := repo.Create(s.T().Context(), repoargs.CreateListing{
		SellerID: 1, Title: gofakeit.ProductName(), UnitPrice: 100, Currency: "USD", TotalQuantity: 3,
	})
	s.Require().NoError(err)

	_, err = repo.DecrementAvailable(s.T().Context(), listing.ID, 4)
	s.Require().ErrorIs(err, domain.ErrInsufficientQuantity)

	found, err := repo.FindByID(s.T().Context(), listing.ID)
	s.Require().NoError(err)
	s.EqualValues(3, found.QuantityAvailable)
}

func (s *RepositoryTestSuite) TestSingleFundingGroupPerListing() {
	repo := &GroupRepository{s: s.s}
	args := repoargs.CreateGroup{ListingID: 7, SellerID: 1, TargetQuantity: 10}

	group, err := repo.Create(s.T().Context(), args)
	s.Require().NoError(err)

	_, err = repo.Create(s.T().Context(), args)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	_, err = repo.UpdateState(s.T().Context(), repoargs.UpdateGroupState{
		ID: group.ID, Status: domain.GroupStatusCancelled, LogisticsStatus: domain.LogisticsStatusNone,
	})
	s.Require().NoError(err)

	_, err = repo.Create(s.T().Context(), args)
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) TestGroupContributionOvershoot() {
	repo := &GroupRepository{s: s.s}
	group, err := repo.Create(s.T().Context(), repoargs.CreateGroup{ListingID: 1, SellerID: 1, TargetQuantity: 5})
	s.Require().NoError(err)

	group, err = repo.AddContribution(s.T().Context(), repoargs.AddContribution{GroupID: group.ID, BuyerID: 10, Quantity: 3})
	s.Require().NoError(err)
	group, err = repo.AddContribution(s.T().Context(), repoargs.AddContribution{GroupID: group.ID, BuyerID: 10, Quantity: 1})
	s.Require().NoError(err)
	s.EqualValues(4, group.Participants[10])

	_, err = repo.AddContribution(s.T().Context(), repoargs.AddContribution{GroupID: group.ID, BuyerID: 11, Quantity: 2})
	s.Require().ErrorIs(err, domain.ErrInsufficientQuantity)

	found, err := repo.FindByID(s.T().Context(), group.ID)
	s.Require().NoError(err)
	s.EqualValues(4, found.QuantityFunded)
	s.Equal(found.QuantityFunded, found.ParticipantsSum())
	s.NotContains(found.Participants, int64(11))
}

func (s *RepositoryTestSuite) TestReturnedGroupIsACopy() {
	repo := &GroupRepository{s: s.s}
	group, err := repo.Create(s.T().Context(), repoargs.CreateGroup{ListingID: 1, SellerID: 1, TargetQuantity: 5})
	s.Require().NoError(err)
	group.Participants[99] = 100

	found, err := repo.FindByID(s.T().Context(), group.ID)
	s.Require().NoError(err)
	s.Empty(found.Participants)
}

func (s *RepositoryTestSuite) TestOrderUniqueness() {
	repo := &OrderRepository{s: s.s}
	args := repoargs.CreateOrder{
		BuyerID: 1, ListingID: 1, GroupID: 1, Quantity: 1, TotalPrice: 100, ExternalPaymentRef: gofakeit.UUID(),
	}
	order, err := repo.Create(s.T().Context(), args)
	s.Require().NoError(err)

	_, err = repo.Create(s.T().Context(), args)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	args.ExternalPaymentRef = gofakeit.UUID()
	_, err = repo.Create(s.T().Context(), args)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey, "one active order per buyer and group")

	cancelled, err := repo.CancelPendingByGroupID(s.T().Context(), 1)
	s.Require().NoError(err)
	s.EqualValues(1, cancelled)

	_, err = repo.Create(s.T().Context(), args)
	s.Require().NoError(err)

	found, err := repo.FindByID(s.T().Context(), order.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusCancelled, found.Status)
}

func (s *RepositoryTestSuite) TestOrderStatusTimestamps() {
	repo := &OrderRepository{s: s.s}
	order, err := repo.Create(s.T().Context(), repoargs.CreateOrder{
		BuyerID: 1, ListingID: 1, GroupID: 1, Quantity: 1, TotalPrice: 100, ExternalPaymentRef: gofakeit.UUID(),
	})
	s.Require().NoError(err)
	s.Nil(order.PaidAt)

	order, err = repo.UpdateStatus(s.T().Context(), repoargs.UpdateOrderStatus{ID: order.ID, Status: domain.OrderStatusPaid})
	s.Require().NoError(err)
	s.NotNil(order.PaidAt)
	s.Nil(order.CompletedAt)

	order, err = repo.UpdateStatus(s.T().Context(), repoargs.UpdateOrderStatus{ID: order.ID, Status: domain.OrderStatusCompleted})
	s.Require().NoError(err)
	s.NotNil(order.CompletedAt)
}

func (s *RepositoryTestSuite) TestTransactionUniquePerGroupAndType() {
	repo := &TransactionRepository{s: s.s}
	args := repoargs.CreateTransaction{
		GroupID: 1, Type: domain.TransactionTypePayout, BeneficiaryID: 1, Amount: 90000, Currency: "USD",
	}
	_, err := repo.Create(s.T().Context(), args)
	s.Require().NoError(err)

	_, err = repo.Create(s.T().Context(), args)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	args.Type = domain.TransactionTypeCommission
	_, err = repo.Create(s.T().Context(), args)
	s.Require().NoError(err)

	transactions, err := repo.GetByGroupID(s.T().Context(), 1)
	s.Require().NoError(err)
	s.Len(transactions, 2)
}

func (s *RepositoryTestSuite) TestNotificationsInbox() {
	repo := &NotificationRepository{s: s.s}
	var created []domain.Notification
	repo.BatchCreate(s.T().Context(), []repoargs.CreateNotification{
		{UserID: 1, Kind: domain.NotificationDispatched, Message: gofakeit.Sentence(3)},
		{UserID: 1, Kind: domain.NotificationLogisticsUpdate, Message: gofakeit.Sentence(3)},
		{UserID: 2, Kind: domain.NotificationDispatched, Message: gofakeit.Sentence(3)},
	}, func(_ int, n *domain.Notification, err error) {
		s.Require().NoError(err)
		created = append(created, *n)
	})
	s.Require().Len(created, 3)

	inbox, err := repo.GetByUserID(s.T().Context(), 1, 10)
	s.Require().NoError(err)
	s.Require().Len(inbox, 2)
	s.Equal(created[1].ID, inbox[0].ID, "newest first")

	s.Require().ErrorIs(repo.MarkRead(s.T().Context(), created[2].ID, 1), domain.ErrRecordNotFound)
	s.Require().NoError(repo.MarkRead(s.T().Context(), created[0].ID, 1))

	marked, err := repo.MarkAllRead(s.T().Context(), 1)
	s.Require().NoError(err)
	s.EqualValues(1, marked)
}

func (s *RepositoryTestSuite) TestReviewUniquePerOrder() {
	repo := &ReviewRepository{s: s.s}
	args := repoargs.CreateReview{OrderID: 1, SellerID: 2, BuyerID: 3, Rating: 5}

	_, err := repo.Create(s.T().Context(), args)
	s.Require().NoError(err)
	_, err = repo.Create(s.T().Context(), args)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	_, err = repo.GetSellerRating(s.T().Context(), 2)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}
