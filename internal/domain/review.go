package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a traveller's rating of a booking. Travellers write them from the client app;
// DestinationID is resolved through the booking's trip.
type Review struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BookingID     uuid.UUID `db:"booking_id" json:"booking_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	DestinationID uuid.UUID `db:"destination_id" json:"destination_id"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	ReviewerName  *string `db:"reviewer_name" json:"-"`
	ReviewerEmail *string `db:"reviewer_email" json:"-"`
}

type ReviewAggregate struct {
	DestinationID uuid.UUID   `json:"destination_id"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	RatingCounts  map[int]int `json:"rating_counts"`
}

type ReviewListResult struct {
	DestinationID uuid.UUID       `json:"destination_id"`
	Reviews       []Review        `json:"reviews"`
	Aggregate     ReviewAggregate `json:"aggregate"`
	Limit         int             `json:"limit"`
	Offset        int             `json:"offset"`
}

type ReviewSortField string

const (
	ReviewSortCreatedAt ReviewSortField = "created_at"
	ReviewSortRating    ReviewSortField = "rating"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

type ReviewListFilter struct {
	Limit     int
	Offset    int
	MinRating *int
	SortField ReviewSortField
	SortOrder SortOrder
}
