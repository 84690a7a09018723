package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
)

// txRunner выполняет функции внутри транзакции с повтором при конфликтах.
type txRunner struct {
	uow   uow.UOW
	retry uow.RetryPolicy
}

// atomically выполняет fn через uow.DoWithRetry. Исчерпание повторов превращается в domain.ErrContention.
func (r txRunner) atomically(ctx context.Context, op string, fn func(context.Context, uow.TX) error) error {
	if err := uow.DoWithRetry(ctx, r.uow, r.retry, fn); err != nil {
		return wrapTxErr(op, err)
	}
	return nil
}

func wrapTxErr(op string, err error) error {
	if errors.Is(err, uow.ErrRetryExhausted) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrContention, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// getRepo возвращает репозиторий транзакции tx, приведенный к типу T.
func getRepo[T any](tx uow.TX, name repoargs.RepositoryName) (T, error) {
	return uow.GetAs[T](tx, uow.RepositoryName(name)) //nolint:wrapcheck
}

// getDirectRepo возвращает репозиторий, работающий вне транзакции.
func getDirectRepo[T any](u uow.UOW, name repoargs.RepositoryName) (T, error) {
	return uow.GetRepositoryAs[T](u, uow.RepositoryName(name)) //nolint:wrapcheck
}
