package memrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type ReviewRepository struct {
	s store
}

func (r *ReviewRepository) Create(_ context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	var review domain.Review
	err := r.s.write(func(st *state) error {
		for _, existing := range st.reviews {
			if existing.OrderID == args.OrderID {
				return duplicate("review for order", args.OrderID)
			}
		}
		review = domain.Review{
			ID:        st.nextID("reviews"),
			CreatedAt: r.s.clock(),
			OrderID:   args.OrderID,
			SellerID:  args.SellerID,
			BuyerID:   args.BuyerID,
			Rating:    args.Rating,
			Comment:   args.Comment,
		}
		st.reviews[review.ID] = review
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) GetSellerRating(_ context.Context, sellerID int64) (*domain.SellerRating, error) {
	var rating domain.SellerRating
	err := r.s.read(func(st *state) error {
		found, ok := st.ratings[sellerID]
		if !ok {
			return notFound("seller rating", sellerID)
		}
		rating = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ReviewRepository) GetSellerRatingForUpdate(ctx context.Context, sellerID int64) (*domain.SellerRating, error) {
	return r.GetSellerRating(ctx, sellerID)
}

func (r *ReviewRepository) SaveSellerRating(_ context.Context, rating domain.SellerRating) (*domain.SellerRating, error) {
	err := r.s.write(func(st *state) error {
		rating.UpdatedAt = r.s.clock()
		st.ratings[rating.SellerID] = rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
