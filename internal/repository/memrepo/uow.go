package memrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
)

// UnitOfWork реализация uow.UOW поверх DB. Транзакции сериализуются мьютексом DB.
type UnitOfWork struct {
	db *DB
}

func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	u.db.mu.Lock()
	defer u.db.mu.Unlock()

	tx := &transaction{
		store:   &txStore{st: u.db.st.clone(), now: u.db.now},
		created: make(map[uow.RepositoryName]uow.Repository),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if u.db.conflicts > 0 {
		u.db.conflicts--
		return fmt.Errorf("%w: injected", uow.ErrConflict)
	}
	u.db.st = tx.store.st
	return nil
}

func (u *UnitOfWork) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return newRepository(name, &directStore{db: u.db})
}

type transaction struct {
	store   *txStore
	created map[uow.RepositoryName]uow.Repository
}

func (t *transaction) Get(name uow.RepositoryName) (uow.Repository, error) {
	if repo, ok := t.created[name]; ok {
		return repo, nil
	}
	repo, err := newRepository(name, t.store)
	if err != nil {
		return nil, err
	}
	t.created[name] = repo
	return repo, nil
}

func newRepository(name uow.RepositoryName, s store) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.ListingRepoName:
		return &ListingRepository{s: s}, nil
	case repoargs.GroupRepoName:
		return &GroupRepository{s: s}, nil
	case repoargs.OrderRepoName:
		return &OrderRepository{s: s}, nil
	case repoargs.TransactionRepoName:
		return &TransactionRepository{s: s}, nil
	case repoargs.NotificationRepoName:
		return &NotificationRepository{s: s}, nil
	case repoargs.ReviewRepoName:
		return &ReviewRepository{s: s}, nil
	case repoargs.PaymentEventRepoName:
		return &PaymentEventRepository{s: s}, nil
	default:
		return nil, uow.ErrRepositoryNotRegistered
	}
}
