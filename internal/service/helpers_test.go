package service

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/memrepo"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/stretchr/testify/require"
)

var (
	_ ListingRepository      = (*memrepo.ListingRepository)(nil)
	_ GroupRepository        = (*memrepo.GroupRepository)(nil)
	_ OrderRepository        = (*memrepo.OrderRepository)(nil)
	_ TransactionRepository  = (*memrepo.TransactionRepository)(nil)
	_ NotificationRepository = (*memrepo.NotificationRepository)(nil)
	_ ReviewRepository       = (*memrepo.ReviewRepository)(nil)
	_ PaymentEventRepository = (*memrepo.PaymentEventRepository)(nil)
)

const platformAccountID int64 = 1

// recordingSink запоминает опубликованные уведомления.
type recordingSink struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (r *recordingSink) Publish(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *recordingSink) byKind(kind domain.NotificationKind) []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domain.Notification
	for _, n := range r.notifications {
		if n.Kind == kind {
			res = append(res, n)
		}
	}
	return res
}

type testEnv struct {
	db   *memrepo.DB
	uow  *memrepo.UnitOfWork
	sink *recordingSink
	svc  *AppServices
}

func newTestEnv(t *testing.T, configure ...func(*Options)) *testEnv {
	t.Helper()
	db := memrepo.NewDB()
	unitOfWork := memrepo.NewUnitOfWork(db)
	sink := &recordingSink{}
	opts := Options{
		RetryPolicy:       uow.RetryPolicy{MaxAttempts: 3},
		CommissionRate:    domain.DefaultCommissionRate,
		PlatformAccountID: platformAccountID,
		Sink:              sink,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	svc, err := Factory(unitOfWork, opts)
	require.NoError(t, err)
	return &testEnv{db: db, uow: unitOfWork, sink: sink, svc: svc}
}

func (e *testEnv) createListing(t *testing.T, sellerID, quantity, unitPrice int64) *domain.Listing {
	t.Helper()
	listing, err := e.svc.ListingService.Create(t.Context(), CreateListingArgs{
		SellerID:      sellerID,
		Title:         gofakeit.ProductName(),
		UnitPrice:     unitPrice,
		TotalQuantity: quantity,
	})
	require.NoError(t, err)
	return listing
}

func (e *testEnv) commit(t *testing.T, listingID, buyerID, quantity int64) *CommitResult {
	t.Helper()
	res, err := e.svc.GroupService.Commit(t.Context(), CommitArgs{
		ListingID: listingID,
		BuyerID:   buyerID,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) pay(t *testing.T, order *domain.Order) *SettleResult {
	t.Helper()
	res, err := e.svc.PaymentService.SettlePayment(t.Context(), order.ID, order.ExternalPaymentRef)
	require.NoError(t, err)
	return res
}

func (e *testEnv) listing(t *testing.T, id int64) *domain.Listing {
	t.Helper()
	listing, err := e.svc.ListingService.Get(t.Context(), id)
	require.NoError(t, err)
	return listing
}

func (e *testEnv) group(t *testing.T, id int64) *domain.Group {
	t.Helper()
	group, err := e.svc.GroupService.Get(t.Context(), id)
	require.NoError(t, err)
	return group
}

func (e *testEnv) transactions(t *testing.T, groupID int64) []domain.Transaction {
	t.Helper()
	repo, err := uow.GetRepositoryAs[TransactionRepository](e.uow, uow.RepositoryName(repoargs.TransactionRepoName))
	require.NoError(t, err)
	transactions, err := repo.GetByGroupID(t.Context(), groupID)
	require.NoError(t, err)
	return transactions
}

// fundedGroup доводит листинг до pending_delivery: покупатели из quantities оплачивают свои доли, продавец отгружает.
func (e *testEnv) fundedGroup(
	t *testing.T,
	sellerID, unitPrice int64,
	quantities map[int64]int64,
) (*domain.Group, map[int64]*domain.Order) {
	t.Helper()
	var total int64
	for _, q := range quantities {
		total += q
	}
	listing := e.createListing(t, sellerID, total, unitPrice)

	orders := make(map[int64]*domain.Order, len(quantities))
	for buyerID, q := range quantities {
		orders[buyerID] = e.commit(t, listing.ID, buyerID, q).Order
	}
	for _, order := range orders {
		e.pay(t, order)
	}
	group, err := e.svc.ListingService.Dispatch(t.Context(), listing.ID, sellerID)
	require.NoError(t, err)
	return group, orders
}
