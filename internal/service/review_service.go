package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	minRating = 1
	maxRating = 5

	ratingPlaces int32 = 4
)

type ReviewService struct {
	txRunner
	reviewRepo ReviewRepository
	l          *logrus.Entry
}

func NewReviewService(u uow.UOW, opts Options) (*ReviewService, error) {
	opts = opts.withDefaults()
	reviewRepo, err := getDirectRepo[ReviewRepository](u, repoargs.ReviewRepoName)
	if err != nil {
		return nil, err
	}
	return &ReviewService{
		txRunner:   txRunner{uow: u, retry: opts.RetryPolicy},
		reviewRepo: reviewRepo,
		l: opts.Logger.WithFields(logrus.Fields{
			"component": "service",
			"module":    "review",
		}),
	}, nil
}

type SubmitReviewArgs struct {
	OrderID int64
	BuyerID int64
	Rating  int
	Comment string
}

type ReviewResult struct {
	Review *domain.Review
	Rating *domain.SellerRating
}

// SubmitReview сохраняет отзыв по завершенному заказу и пересчитывает средний рейтинг продавца.
// На один заказ допускается один отзыв, повтор возвращает domain.ErrAlreadyReviewed.
func (s *ReviewService) SubmitReview(ctx context.Context, args SubmitReviewArgs) (*ReviewResult, error) {
	if args.Rating < minRating || args.Rating > maxRating {
		return nil, fmt.Errorf("submitting review: %w: rating must be in [%d, %d]",
			domain.ErrInvalidArgument, minRating, maxRating)
	}

	var result *ReviewResult
	err := s.atomically(ctx, "submitting review", func(c context.Context, tx uow.TX) error {
		result = nil

		orders, err := getRepo[OrderRepository](tx, repoargs.OrderRepoName)
		if err != nil {
			return err
		}
		listings, err := getRepo[ListingRepository](tx, repoargs.ListingRepoName)
		if err != nil {
			return err
		}
		reviews, err := getRepo[ReviewRepository](tx, repoargs.ReviewRepoName)
		if err != nil {
			return err
		}

		order, err := orders.FindByID(c, args.OrderID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if order.BuyerID != args.BuyerID {
			return fmt.Errorf("order %d belongs to another buyer: %w", args.OrderID, domain.ErrForbidden)
		}
		if order.Status != domain.OrderStatusCompleted {
			return fmt.Errorf("order %d is %s: %w", args.OrderID, order.Status, domain.ErrInvalidTransition)
		}
		listing, err := listings.FindByID(c, order.ListingID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		review, err := reviews.Create(c, repoargs.CreateReview{
			OrderID:  order.ID,
			SellerID: listing.SellerID,
			BuyerID:  args.BuyerID,
			Rating:   args.Rating,
			Comment:  args.Comment,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return fmt.Errorf("order %d: %w", args.OrderID, domain.ErrAlreadyReviewed)
			}
			return err //nolint:wrapcheck
		}

		current, err := reviews.GetSellerRatingForUpdate(c, listing.SellerID)
		if err != nil {
			if !errors.Is(err, domain.ErrRecordNotFound) {
				return err //nolint:wrapcheck
			}
			current = &domain.SellerRating{SellerID: listing.SellerID, Average: decimal.Zero}
		}

		rating, err := reviews.SaveSellerRating(c, NextRating(*current, args.Rating))
		if err != nil {
			return err //nolint:wrapcheck
		}
		result = &ReviewResult{Review: review, Rating: rating}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.l.WithFields(logrus.Fields{
		"sellerID": result.Rating.SellerID,
		"average":  result.Rating.Average.String(),
	}).Debug("seller rating updated")
	return result, nil
}

// GetSellerRating возвращает рейтинг продавца. У продавца без отзывов рейтинг нулевой.
func (s *ReviewService) GetSellerRating(ctx context.Context, sellerID int64) (*domain.SellerRating, error) {
	rating, err := s.reviewRepo.GetSellerRating(ctx, sellerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return &domain.SellerRating{SellerID: sellerID, Average: decimal.Zero}, nil
		}
		return nil, err //nolint:wrapcheck
	}
	return rating, nil
}

// NextRating новое среднее (avg*count + r) / (count + 1), округленное до 4 знаков.
func NextRating(current domain.SellerRating, r int) domain.SellerRating {
	count := decimal.NewFromInt(current.Count)
	sum := current.Average.Mul(count).Add(decimal.NewFromInt(int64(r)))
	return domain.SellerRating{
		SellerID: current.SellerID,
		Average:  sum.DivRound(count.Add(decimal.NewFromInt(1)), ratingPlaces),
		Count:    current.Count + 1,
	}
}
