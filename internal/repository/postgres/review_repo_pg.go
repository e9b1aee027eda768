package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

const reviewSelect = `
        SELECT
            r.id,
            r.booking_id,
            r.user_id,
            b.trip_id AS destination_id,
            r.rating,
            r.comment,
            r.created_at,
            p.full_name AS reviewer_name,
            p.email AS reviewer_email
        FROM reviews r
        JOIN bookings b ON b.id = r.booking_id
        LEFT JOIN profiles p ON p.id = r.user_id
`

type ReviewRepository struct {
	db *sqlx.DB
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.GetContext(ctx, &review, reviewSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID, filter domain.ReviewListFilter) ([]domain.Review, error) {
	where := `WHERE b.trip_id = $1`
	args := []any{destinationID}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		where += fmt.Sprintf(` AND r.rating >= $%d`, len(args))
	}

	sortCol := "r.created_at"
	if filter.SortField == domain.ReviewSortRating {
		sortCol = "r.rating"
	}
	order := "DESC"
	if filter.SortOrder == domain.SortOrderAsc {
		order = "ASC"
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`%s %s ORDER BY %s %s, r.id DESC LIMIT $%d OFFSET $%d`,
		reviewSelect, where, sortCol, order, len(args)-1, len(args))

	reviews := []domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) AggregateByDestination(ctx context.Context, destinationID uuid.UUID) (*domain.ReviewAggregate, error) {
	const query = `
        SELECT r.rating, COUNT(*)::int AS total
        FROM reviews r
        JOIN bookings b ON b.id = r.booking_id
        WHERE b.trip_id = $1
        GROUP BY r.rating
    `
	var rows []struct {
		Rating int `db:"rating"`
		Total  int `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, destinationID); err != nil {
		return nil, err
	}

	aggregate := &domain.ReviewAggregate{DestinationID: destinationID, RatingCounts: map[int]int{}}
	sum := 0
	for _, row := range rows {
		aggregate.RatingCounts[row.Rating] = row.Total
		aggregate.TotalReviews += row.Total
		sum += row.Rating * row.Total
	}
	if aggregate.TotalReviews > 0 {
		aggregate.AverageRating = float64(sum) / float64(aggregate.TotalReviews)
	}
	return aggregate, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
