package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// fakeUOW возвращает ошибки из errs по очереди, затем nil.
type fakeUOW struct {
	errs  []error
	calls int
}

func (f *fakeUOW) Do(ctx context.Context, fn func(context.Context, TX) error) error {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return err
	}
	return fn(ctx, nil)
}

func (f *fakeUOW) GetRepository(RepositoryName) (Repository, error) {
	return nil, ErrRepositoryNotRegistered
}

type RetryTestSuite struct {
	suite.Suite
}

func TestRetrySuite(t *testing.T) {
	suite.Run(t, new(RetryTestSuite))
}

func (s *RetryTestSuite) TestRetriesConflicts() {
	u := &fakeUOW{errs: []error{ErrConflict, ErrConflict}}
	err := DoWithRetry(s.T().Context(), u, RetryPolicy{MaxAttempts: 3}, func(context.Context, TX) error {
		return nil
	})
	s.Require().NoError(err)
	s.Equal(3, u.calls)
}

func (s *RetryTestSuite) TestExhausted() {
	u := &fakeUOW{errs: []error{ErrConflict, ErrConflict, ErrConflict}}
	err := DoWithRetry(s.T().Context(), u, RetryPolicy{MaxAttempts: 3}, func(context.Context, TX) error {
		return nil
	})
	s.Require().ErrorIs(err, ErrRetryExhausted)
	s.Require().ErrorIs(err, ErrConflict)
	s.Equal(3, u.calls)
}

func (s *RetryTestSuite) TestOtherErrorsAreNotRetried() {
	boom := errors.New("boom")
	u := &fakeUOW{errs: []error{boom}}
	err := DoWithRetry(s.T().Context(), u, RetryPolicy{MaxAttempts: 3}, func(context.Context, TX) error {
		return nil
	})
	s.Require().ErrorIs(err, boom)
	s.Equal(1, u.calls)
}

func (s *RetryTestSuite) TestContextCancelledDuringBackoff() {
	ctx, cancel := context.WithCancel(s.T().Context())
	cancel()

	u := &fakeUOW{errs: []error{ErrConflict, ErrConflict}}
	err := DoWithRetry(ctx, u, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}, func(context.Context, TX) error {
		return nil
	})
	s.Require().ErrorIs(err, context.Canceled)
	s.Equal(1, u.calls)
}

func (s *RetryTestSuite) TestBackoffGrowsAndIsCapped() {
	p := RetryPolicy{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}

	first := p.backoff(1)
	s.InDelta(float64(100*time.Millisecond), float64(first), float64(15*time.Millisecond))

	second := p.backoff(2)
	s.InDelta(float64(200*time.Millisecond), float64(second), float64(30*time.Millisecond))

	capped := p.backoff(4)
	s.InDelta(float64(300*time.Millisecond), float64(capped), float64(45*time.Millisecond))
}

func (s *RetryTestSuite) TestJitterBounds() {
	for range 100 {
		v := jitter(1000, 0.15, 0.15)
		s.GreaterOrEqual(v, 850.0)
		s.LessOrEqual(v, 1150.0)
	}
}
