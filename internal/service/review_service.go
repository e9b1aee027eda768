package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

var (
	ErrReviewValidation = errors.New("review validation failed")
	ErrReviewNotFound   = errors.New("review not found")
)

type ReviewService struct {
	reviews      ports.ReviewRepository
	destinations ports.DestinationRepository
}

func NewReviewService(reviews ports.ReviewRepository, destinations ports.DestinationRepository) *ReviewService {
	return &ReviewService{reviews: reviews, destinations: destinations}
}

// ListDestinationReviews pages through a destination's reviews. The aggregate always
// covers every review of the destination, independent of MinRating.
func (s *ReviewService) ListDestinationReviews(ctx context.Context, destinationID uuid.UUID, filter domain.ReviewListFilter) (*domain.ReviewListResult, error) {
	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	normalized, err := normalizeReviewFilter(filter)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByDestination(ctx, destinationID, normalized)
	if err != nil {
		return nil, err
	}
	aggregate, err := s.reviews.AggregateByDestination(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewListResult{
		DestinationID: destinationID,
		Reviews:       reviews,
		Aggregate:     *aggregate,
		Limit:         normalized.Limit,
		Offset:        normalized.Offset,
	}, nil
}

// DeleteReview removes a review; admins use it for moderation.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func normalizeReviewFilter(filter domain.ReviewListFilter) (domain.ReviewListFilter, error) {
	result := filter
	if result.Limit <= 0 {
		result.Limit = 20
	}
	if result.Limit > 100 {
		result.Limit = 100
	}
	if result.Offset < 0 {
		result.Offset = 0
	}
	if result.SortField != domain.ReviewSortRating {
		result.SortField = domain.ReviewSortCreatedAt
	}
	if result.SortOrder != domain.SortOrderAsc {
		result.SortOrder = domain.SortOrderDesc
	}
	if result.MinRating != nil {
		if err := validateRating(*result.MinRating); err != nil {
			return domain.ReviewListFilter{}, err
		}
	}
	return result, nil
}

func validateRating(rating int) error {
	if rating < domain.MinReviewRating || rating > domain.MaxReviewRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrReviewValidation, domain.MinReviewRating, domain.MaxReviewRating)
	}
	return nil
}
