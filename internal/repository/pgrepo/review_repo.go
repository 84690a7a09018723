package pgrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const ratingColumns = `seller_id, updated_at, average::text, count`

// ReviewRepository отзывы и агрегированный рейтинг продавцов.
type ReviewRepository struct {
	conn uow.DBTX
}

func NewReviewRepository(conn uow.DBTX) *ReviewRepository {
	return &ReviewRepository{conn: conn}
}

func (r *ReviewRepository) Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	var review domain.Review
	err := r.conn.QueryRow(ctx, `
		INSERT INTO reviews (order_id, seller_id, buyer_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, order_id, seller_id, buyer_id, rating, comment`,
		args.OrderID, args.SellerID, args.BuyerID, args.Rating, args.Comment,
	).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.OrderID,
		&review.SellerID,
		&review.BuyerID,
		&review.Rating,
		&review.Comment,
	)
	if err != nil {
		return nil, convertErr(err, "creating review for order %d", args.OrderID)
	}
	return &review, nil
}

func (r *ReviewRepository) GetSellerRating(ctx context.Context, sellerID int64) (*domain.SellerRating, error) {
	rating, err := scanRating(
		r.conn.QueryRow(ctx, `SELECT `+ratingColumns+` FROM seller_ratings WHERE seller_id = $1`, sellerID),
	)
	if err != nil {
		return nil, convertErr(err, "getting rating of seller %d", sellerID)
	}
	return rating, nil
}

func (r *ReviewRepository) GetSellerRatingForUpdate(ctx context.Context, sellerID int64) (*domain.SellerRating, error) {
	rating, err := scanRating(
		r.conn.QueryRow(ctx, `SELECT `+ratingColumns+` FROM seller_ratings WHERE seller_id = $1 FOR UPDATE`, sellerID),
	)
	if err != nil {
		return nil, convertErr(err, "locking rating of seller %d", sellerID)
	}
	return rating, nil
}

func (r *ReviewRepository) SaveSellerRating(ctx context.Context, rating domain.SellerRating) (*domain.SellerRating, error) {
	saved, err := scanRating(r.conn.QueryRow(ctx, `
		INSERT INTO seller_ratings (seller_id, average, count)
		VALUES ($1, $2::numeric, $3)
		ON CONFLICT (seller_id) DO UPDATE SET average = EXCLUDED.average, count = EXCLUDED.count, updated_at = NOW()
		RETURNING `+ratingColumns,
		rating.SellerID, rating.Average.String(), rating.Count,
	))
	if err != nil {
		return nil, convertErr(err, "saving rating of seller %d", rating.SellerID)
	}
	return saved, nil
}

func scanRating(row pgx.Row) (*domain.SellerRating, error) {
	var rating domain.SellerRating
	var average string
	if err := row.Scan(&rating.SellerID, &rating.UpdatedAt, &average, &rating.Count); err != nil {
		return nil, err //nolint:wrapcheck
	}
	avg, err := decimal.NewFromString(average)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	rating.Average = avg
	return &rating, nil
}
