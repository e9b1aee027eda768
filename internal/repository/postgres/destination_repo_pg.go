package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

const destinationColumns = `id, name, country, description, image_url, price_per_person, created_at`

type DestinationRepository struct {
	db *sqlx.DB
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	const query = `
        INSERT INTO destinations (name, country, description, image_url, price_per_person)
        VALUES (:name, :country, :description, :image_url, :price_per_person)
        RETURNING ` + destinationColumns

	args := map[string]any{
		"name":             strings.TrimSpace(deref(fields.Name)),
		"country":          strings.TrimSpace(deref(fields.Country)),
		"description":      nullString(fields.Description),
		"image_url":        nullString(fields.ImageURL),
		"price_per_person": nullFloat(fields.PricePerPerson),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("insert destination: no row returned")
	}
	var dest domain.Destination
	if err := rows.StructScan(&dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	setParts := []string{}
	args := []any{id}
	idx := 2

	if fields.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", idx))
		args = append(args, strings.TrimSpace(*fields.Name))
		idx++
	}
	if fields.Country != nil {
		setParts = append(setParts, fmt.Sprintf("country = $%d", idx))
		args = append(args, strings.TrimSpace(*fields.Country))
		idx++
	}
	if fields.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", idx))
		args = append(args, nullString(fields.Description))
		idx++
	}
	if fields.ImageURL != nil {
		setParts = append(setParts, fmt.Sprintf("image_url = $%d", idx))
		args = append(args, nullString(fields.ImageURL))
		idx++
	}
	if fields.PricePerPerson != nil {
		setParts = append(setParts, fmt.Sprintf("price_per_person = $%d", idx))
		args = append(args, *fields.PricePerPerson)
	}

	if len(setParts) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`
        UPDATE destinations
        SET %s
        WHERE id = $1
        RETURNING %s
    `, strings.Join(setParts, ", "), destinationColumns)

	var dest domain.Destination
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindByName(ctx context.Context, name string) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destinations WHERE name = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, strings.TrimSpace(name)); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	items := []domain.Destination{}
	if len(ids) == 0 {
		return items, nil
	}
	const query = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DestinationRepository) List(ctx context.Context, limit, offset int) ([]domain.Destination, error) {
	const query = `
        SELECT ` + destinationColumns + `
        FROM destinations
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	items := []domain.Destination{}
	if err := r.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
