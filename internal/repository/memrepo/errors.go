package memrepo

import (
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
)

func notFound(entity string, id int64) error {
	return fmt.Errorf("[memrepo/finding %s %d] %w", entity, id, domain.ErrRecordNotFound)
}

func duplicate(entity string, key any) error {
	return fmt.Errorf("[memrepo/creating %s `%v`] %w", entity, key, domain.ErrDuplicateKey)
}

func truncate[T any](items []T, limit uint) []T {
	if limit > 0 && uint(len(items)) > limit {
		return items[:limit]
	}
	return items
}
