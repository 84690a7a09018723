package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestConcurrentCommitsNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	listing := env.createListing(t, 1, 100, 10)

	const buyers = 60
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := make(map[int64]int64)

	for i := range buyers {
		wg.Add(1)
		go func(buyerID int64) {
			defer wg.Done()
			res, err := env.svc.GroupService.Commit(t.Context(), CommitArgs{
				ListingID: listing.ID,
				BuyerID:   buyerID,
				Quantity:  3,
			})
			if err != nil {
				if !errors.Is(err, domain.ErrInsufficientQuantity) {
					t.Errorf("unexpected commit error: %v", err)
				}
				return
			}
			mu.Lock()
			accepted[buyerID] = res.Order.Quantity
			mu.Unlock()
		}(int64(i + 100))
	}
	wg.Wait()

	group, err := env.svc.GroupService.Get(t.Context(), 1)
	require.NoError(t, err)
	require.LessOrEqual(t, group.QuantityFunded, group.TargetQuantity)
	require.Equal(t, group.QuantityFunded, group.ParticipantsSum())
	require.EqualValues(t, 99, group.QuantityFunded, "33 commits of 3 fit into 100")
	require.Len(t, accepted, 33)
	require.Len(t, env.sink.byKind(domain.NotificationThreshold90), 1)
}

func TestConcurrentSettleDecrementsOnce(t *testing.T) {
	env := newTestEnv(t)
	listing := env.createListing(t, 1, 10, 100)
	res := env.commit(t, listing.ID, 2, 4)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var settled, duplicates int
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.PaymentService.SettlePayment(t.Context(), res.Order.ID, res.Order.ExternalPaymentRef)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				settled++
			case errors.Is(err, domain.ErrAlreadyProcessed):
				duplicates++
			default:
				t.Errorf("unexpected settle error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, settled)
	require.Equal(t, 9, duplicates)
	require.EqualValues(t, 6, env.listing(t, listing.ID).QuantityAvailable)
}

func TestConcurrentReceiptsReleaseOnce(t *testing.T) {
	env := newTestEnv(t)
	quantities := map[int64]int64{}
	for buyerID := int64(10); buyerID < 30; buyerID++ {
		quantities[buyerID] = 5
	}
	group, orders := env.fundedGroup(t, 1, 1000, quantities)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var released int
	for buyerID, order := range orders {
		// Каждый покупатель подтверждает дважды.
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := env.svc.ReceiptService.ConfirmReceipt(t.Context(), order.ID, buyerID)
				if err != nil && !errors.Is(err, domain.ErrAlreadyProcessed) {
					t.Errorf("unexpected confirm error: %v", err)
					return
				}
				if err == nil && res.Released {
					mu.Lock()
					released++
					mu.Unlock()
				}
			}()
		}
	}
	wg.Wait()

	require.Equal(t, 1, released)
	transactions := env.transactions(t, group.ID)
	require.Len(t, transactions, 2)
	var sum int64
	for _, tr := range transactions {
		sum += tr.Amount
	}
	require.EqualValues(t, 100*1000, sum, "payout + commission == target * unit price")
	require.Equal(t, domain.GroupStatusCompleted, env.group(t, group.ID).Status)
}

// TestCommitDuringSettlement второй покупатель добирает остаток партии, пока подтверждается оплата первого.
// При любом порядке выполнения листинг не уходит в минус, а группа собирается ровно до целевого количества.
func TestCommitDuringSettlement(t *testing.T) {
	for range 20 {
		env := newTestEnv(t)
		listing := env.createListing(t, 1, 100, 10)
		first := env.commit(t, listing.ID, 2, 60)

		var wg sync.WaitGroup
		var commitRes *CommitResult
		var commitErr, settleErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, settleErr = env.svc.PaymentService.SettlePayment(t.Context(), first.Order.ID, first.Order.ExternalPaymentRef)
		}()
		go func() {
			defer wg.Done()
			commitRes, commitErr = env.svc.GroupService.Commit(t.Context(), CommitArgs{
				ListingID: listing.ID,
				BuyerID:   3,
				Quantity:  40,
			})
		}()
		wg.Wait()

		require.NoError(t, settleErr)
		require.NoError(t, commitErr)
		require.Equal(t, first.Group.ID, commitRes.Group.ID)

		group := env.group(t, first.Group.ID)
		require.EqualValues(t, 100, group.QuantityFunded)
		require.Equal(t, domain.GroupStatusFunding, group.Status, "second buyer has not paid yet")
		require.EqualValues(t, 40, env.listing(t, listing.ID).QuantityAvailable)

		res := env.pay(t, commitRes.Order)
		require.True(t, res.FullyFunded)
		require.EqualValues(t, 0, env.listing(t, listing.ID).QuantityAvailable)
	}
}
