package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type ProfileRepository struct {
	db *sqlx.DB
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepo(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	const query = `
        SELECT id, full_name, email, role, phone, created_at, updated_at
        FROM profiles
        WHERE id = $1
    `
	var profile domain.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	if len(ids) == 0 {
		return profiles, nil
	}
	const query = `
        SELECT id, full_name, email, role, phone, created_at, updated_at
        FROM profiles
        WHERE id = ANY($1)
    `
	if err := r.db.SelectContext(ctx, &profiles, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	const query = `
        SELECT id, full_name, email, role, phone, created_at, updated_at
        FROM profiles
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	profiles := []domain.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, limit, offset); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error) {
	const query = `
        UPDATE profiles
        SET role = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING id, full_name, email, role, phone, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, id, role)
	var profile domain.Profile
	if err := row.StructScan(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
