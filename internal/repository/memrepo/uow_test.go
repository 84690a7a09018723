package memrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/stretchr/testify/suite"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	db  *DB
	uow *UnitOfWork
}

func TestUnitOfWorkSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.db = NewDB()
	s.uow = NewUnitOfWork(s.db)
}

func (s *UnitOfWorkTestSuite) listings() *ListingRepository {
	repo, err := uow.GetRepositoryAs[*ListingRepository](s.uow, uow.RepositoryName(repoargs.ListingRepoName))
	s.Require().NoError(err)
	return repo
}

func (s *UnitOfWorkTestSuite) createListing(quantity int64) *domain.Listing {
	listing, err := s.listings().Create(s.T().Context(), repoargs.CreateListing{
		SellerID:      gofakeit.Int64(),
		Title:         gofakeit.ProductName(),
		UnitPrice:     1000,
		Currency:      "USD",
		TotalQuantity: quantity,
	})
	s.Require().NoError(err)
	return listing
}

func (s *UnitOfWorkTestSuite) TestCommit() {
	listing := s.createListing(10)

	err := s.uow.Do(s.T().Context(), func(ctx context.Context, tx uow.TX) error {
		repo, err := uow.GetAs[*ListingRepository](tx, uow.RepositoryName(repoargs.ListingRepoName))
		s.Require().NoError(err)
		_, err = repo.DecrementAvailable(ctx, listing.ID, 4)
		return err
	})
	s.Require().NoError(err)

	found, err := s.listings().FindByID(s.T().Context(), listing.ID)
	s.Require().NoError(err)
	s.EqualValues(6, found.QuantityAvailable)
}

func (s *UnitOfWorkTestSuite) TestRollbackOnError() {
	listing := s.createListing(10)
	boom := errors.New("boom")

	err := s.uow.Do(s.T().Context(), func(ctx context.Context, tx uow.TX) error {
		repo, err := uow.GetAs[*ListingRepository](tx, uow.RepositoryName(repoargs.ListingRepoName))
		s.Require().NoError(err)
		if _, err = repo.DecrementAvailable(ctx, listing.ID, 4); err != nil {
			return err
		}
		if _, err = repo.UpdateStatus(ctx, listing.ID, domain.ListingStatusSuspended); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	found, err := s.listings().FindByID(s.T().Context(), listing.ID)
	s.Require().NoError(err)
	s.EqualValues(10, found.QuantityAvailable)
	s.Equal(domain.ListingStatusAvailable, found.Status)
}

func (s *UnitOfWorkTestSuite) TestInjectedConflictDiscardsChanges() {
	listing := s.createListing(10)
	s.db.InjectConflicts(1)

	decrement := func(ctx context.Context, tx uow.TX) error {
		repo, err := uow.GetAs[*ListingRepository](tx, uow.RepositoryName(repoargs.ListingRepoName))
		if err != nil {
			return err
		}
		_, err = repo.DecrementAvailable(ctx, listing.ID, 1)
		return err
	}

	err := s.uow.Do(s.T().Context(), decrement)
	s.Require().ErrorIs(err, uow.ErrConflict)

	err = uow.DoWithRetry(s.T().Context(), s.uow, uow.RetryPolicy{MaxAttempts: 2}, decrement)
	s.Require().NoError(err)

	found, err := s.listings().FindByID(s.T().Context(), listing.ID)
	s.Require().NoError(err)
	s.EqualValues(9, found.QuantityAvailable)
}

func (s *UnitOfWorkTestSuite) TestRetryExhausted() {
	s.db.InjectConflicts(3)

	var calls int
	err := uow.DoWithRetry(s.T().Context(), s.uow, uow.RetryPolicy{MaxAttempts: 3}, func(context.Context, uow.TX) error {
		calls++
		return nil
	})
	s.Require().ErrorIs(err, uow.ErrRetryExhausted)
	s.Require().ErrorIs(err, uow.ErrConflict)
	s.Equal(3, calls)
}

func (s *UnitOfWorkTestSuite) TestUnknownRepository() {
	_, err := s.uow.GetRepository("unknown")
	s.Require().ErrorIs(err, uow.ErrRepositoryNotRegistered)
}
