package memrepo

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type ListingRepository struct {
	s store
}

func (l *ListingRepository) Create(_ context.Context, args repoargs.CreateListing) (*domain.Listing, error) {
	var listing domain.Listing
	err := l.s.write(func(st *state) error {
		now := l.s.clock()
		listing = domain.Listing{
			ID:                st.nextID("listings"),
			CreatedAt:         now,
			UpdatedAt:         now,
			SellerID:          args.SellerID,
			Title:             args.Title,
			UnitPrice:         args.UnitPrice,
			Currency:          args.Currency,
			TotalQuantity:     args.TotalQuantity,
			QuantityAvailable: args.TotalQuantity,
			Status:            domain.ListingStatusAvailable,
		}
		st.listings[listing.ID] = listing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (l *ListingRepository) FindByID(_ context.Context, id int64) (*domain.Listing, error) {
	var listing domain.Listing
	err := l.s.read(func(st *state) error {
		found, ok := st.listings[id]
		if !ok {
			return notFound("listing", id)
		}
		listing = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (l *ListingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Listing, error) {
	return l.FindByID(ctx, id)
}

func (l *ListingRepository) ListByStatus(
	_ context.Context,
	status domain.ListingStatusType,
	limit uint,
) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := l.s.read(func(st *state) error {
		for _, listing := range st.listings {
			if listing.Status == status {
				listings = append(listings, listing)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(listings, func(a, b domain.Listing) int { return cmp.Compare(b.ID, a.ID) })
	return truncate(listings, limit), nil
}

func (l *ListingRepository) DecrementAvailable(_ context.Context, id int64, quantity int64) (*domain.Listing, error) {
	return l.update(id, func(listing *domain.Listing) error {
		if listing.QuantityAvailable-quantity < 0 {
			return fmt.Errorf("[memrepo/decrementing listing %d by %d] %w", id, quantity, domain.ErrInsufficientQuantity)
		}
		listing.QuantityAvailable -= quantity
		return nil
	})
}

func (l *ListingRepository) UpdateStatus(
	_ context.Context,
	id int64,
	status domain.ListingStatusType,
) (*domain.Listing, error) {
	return l.update(id, func(listing *domain.Listing) error {
		listing.Status = status
		return nil
	})
}

func (l *ListingRepository) update(id int64, fn func(*domain.Listing) error) (*domain.Listing, error) {
	var listing domain.Listing
	err := l.s.write(func(st *state) error {
		found, ok := st.listings[id]
		if !ok {
			return notFound("listing", id)
		}
		if err := fn(&found); err != nil {
			return err
		}
		found.UpdatedAt = l.s.clock()
		st.listings[id] = found
		listing = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
