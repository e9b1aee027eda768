package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Reviewer      string    `json:"reviewer"`
}

type ReviewAggregateResponse struct {
	AverageRating float64        `json:"average_rating"`
	TotalReviews  int            `json:"total_reviews"`
	RatingCounts  map[string]int `json:"rating_counts"`
}

type ReviewDeleteResponse struct {
	Success bool           `json:"success"`
	Review  ReviewResponse `json:"review"`
}

type ReviewListResponse struct {
	DestinationID uuid.UUID               `json:"destination_id"`
	Aggregate     ReviewAggregateResponse `json:"aggregate"`
	Reviews       []ReviewResponse        `json:"reviews"`
	Limit         int                     `json:"limit"`
	Offset        int                     `json:"offset"`
}

// RegisterReviews mounts the public review listing and admin moderation.
func RegisterReviews(e *echo.Echo, admin *echo.Group, reviews *service.ReviewService) {
	handler := &ReviewHandler{reviews: reviews}

	e.GET("/api/destinations/:id/reviews", handler.listReviews)
	admin.DELETE("/reviews/:id", handler.deleteReview)
}

func (h *ReviewHandler) listReviews(c echo.Context) error {
	destID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	filter, err := parseReviewFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	result, err := h.reviews.ListDestinationReviews(c.Request().Context(), destID, filter)
	if err != nil {
		return writeError(c, err)
	}

	reviews := make([]ReviewResponse, 0, len(result.Reviews))
	for _, review := range result.Reviews {
		reviews = append(reviews, toReviewResponse(review))
	}
	return c.JSON(http.StatusOK, ReviewListResponse{
		DestinationID: result.DestinationID,
		Aggregate:     toAggregateResponse(&result.Aggregate),
		Reviews:       reviews,
		Limit:         result.Limit,
		Offset:        result.Offset,
	})
}

func (h *ReviewHandler) deleteReview(c echo.Context) error {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid review id"))
	}
	review, err := h.reviews.DeleteReview(c.Request().Context(), reviewID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ReviewDeleteResponse{Success: true, Review: toReviewResponse(*review)})
}

func parseReviewFilter(c echo.Context) (domain.ReviewListFilter, error) {
	limit, offset := parsePagination(c, 20, 0)
	filter := domain.ReviewListFilter{Limit: limit, Offset: offset}

	if raw := strings.TrimSpace(c.QueryParam("min_rating")); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ReviewListFilter{}, errors.New("min_rating must be an integer")
		}
		filter.MinRating = &val
	}

	if strings.EqualFold(strings.TrimSpace(c.QueryParam("sort")), "rating") {
		filter.SortField = domain.ReviewSortRating
	} else {
		filter.SortField = domain.ReviewSortCreatedAt
	}
	if strings.EqualFold(strings.TrimSpace(c.QueryParam("order")), "asc") {
		filter.SortOrder = domain.SortOrderAsc
	} else {
		filter.SortOrder = domain.SortOrderDesc
	}
	return filter, nil
}

func toReviewResponse(review domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:            review.ID,
		BookingID:     review.BookingID,
		DestinationID: review.DestinationID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		CreatedAt:     review.CreatedAt,
		Reviewer:      reviewerDisplayName(review),
	}
}

func toAggregateResponse(aggregate *domain.ReviewAggregate) ReviewAggregateResponse {
	if aggregate == nil {
		return ReviewAggregateResponse{RatingCounts: stringKeyedCounts(nil)}
	}
	return ReviewAggregateResponse{
		AverageRating: aggregate.AverageRating,
		TotalReviews:  aggregate.TotalReviews,
		RatingCounts:  stringKeyedCounts(aggregate.RatingCounts),
	}
}

func stringKeyedCounts(counts map[int]int) map[string]int {
	result := make(map[string]int, domain.MaxReviewRating)
	for rating := domain.MinReviewRating; rating <= domain.MaxReviewRating; rating++ {
		result[strconv.Itoa(rating)] = counts[rating]
	}
	return result
}

// reviewerDisplayName falls back to the email's local part, then "Traveller".
func reviewerDisplayName(review domain.Review) string {
	if review.ReviewerName != nil {
		if trimmed := strings.TrimSpace(*review.ReviewerName); trimmed != "" {
			return trimmed
		}
	}
	if review.ReviewerEmail != nil {
		if local, _, ok := strings.Cut(*review.ReviewerEmail, "@"); ok && local != "" {
			return local
		}
	}
	return "Traveller"
}
