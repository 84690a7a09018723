package memrepo

import (
	"cmp"
	"context"
	"slices"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type TransactionRepository struct {
	s store
}

func (t *TransactionRepository) Create(_ context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := t.s.write(func(st *state) error {
		for _, existing := range st.transactions {
			if existing.GroupID == args.GroupID && existing.Type == args.Type {
				return duplicate("transaction", string(args.Type))
			}
		}
		transaction = domain.Transaction{
			ID:            st.nextID("transactions"),
			CreatedAt:     t.s.clock(),
			GroupID:       args.GroupID,
			Type:          args.Type,
			BeneficiaryID: args.BeneficiaryID,
			Amount:        args.Amount,
			Currency:      args.Currency,
		}
		st.transactions[transaction.ID] = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (t *TransactionRepository) GetByGroupID(_ context.Context, groupID int64) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	_ = t.s.read(func(st *state) error {
		for _, transaction := range st.transactions {
			if transaction.GroupID == groupID {
				transactions = append(transactions, transaction)
			}
		}
		return nil
	})
	slices.SortFunc(transactions, func(a, b domain.Transaction) int { return cmp.Compare(a.ID, b.ID) })
	return transactions, nil
}
