package uow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErr(t *testing.T) {
	serialization := &pgconn.PgError{Code: "40001"}
	deadlock := &pgconn.PgError{Code: "40P01"}
	unique := &pgconn.PgError{Code: "23505"}
	plain := errors.New("plain")

	assert.ErrorIs(t, classifyErr(serialization), ErrConflict)
	assert.ErrorIs(t, classifyErr(fmt.Errorf("wrapped: %w", deadlock)), ErrConflict)
	assert.NotErrorIs(t, classifyErr(unique), ErrConflict)
	assert.Equal(t, plain, classifyErr(plain))

	already := fmt.Errorf("repo: %w", ErrConflict)
	assert.Equal(t, already, classifyErr(already))
}

func TestIsConflictErr(t *testing.T) {
	assert.True(t, IsConflictErr(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsConflictErr(errors.New("40001")))
}
