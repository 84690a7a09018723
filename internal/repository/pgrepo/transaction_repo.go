package pgrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, created_at, group_id, type, beneficiary_id, amount, currency`

// TransactionRepository журнал выплат. Записи только добавляются, пара (group_id, type) уникальна.
type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

func (t *TransactionRepository) Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
	transaction, err := scanTransaction(t.conn.QueryRow(ctx, `
		INSERT INTO payout_transactions (group_id, type, beneficiary_id, amount, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+transactionColumns,
		args.GroupID, string(args.Type), args.BeneficiaryID, args.Amount, args.Currency,
	))
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for group %d", args.Type, args.GroupID)
	}
	return transaction, nil
}

func (t *TransactionRepository) GetByGroupID(ctx context.Context, groupID int64) ([]domain.Transaction, error) {
	rows, err := t.conn.Query(ctx,
		`SELECT `+transactionColumns+` FROM payout_transactions WHERE group_id = $1 ORDER BY id`, groupID)
	if err != nil {
		return nil, convertErr(err, "getting transactions of group %d", groupID)
	}
	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		transaction, scanErr := scanTransaction(row)
		if scanErr != nil {
			return domain.Transaction{}, scanErr
		}
		return *transaction, nil
	})
	if err != nil {
		return nil, convertErr(err, "scanning transactions of group %d", groupID)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var typ string
	if err := row.Scan(
		&transaction.ID,
		&transaction.CreatedAt,
		&transaction.GroupID,
		&typ,
		&transaction.BeneficiaryID,
		&transaction.Amount,
		&transaction.Currency,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	transaction.Type = domain.TransactionType(typ)
	return &transaction, nil
}
