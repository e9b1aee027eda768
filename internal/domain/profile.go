package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  *string   `db:"full_name" json:"full_name,omitempty"`
	Email     string    `db:"email" json:"email"`
	Role      Role      `db:"role" json:"role"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Identity is the caller as resolved by the identity provider.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	IsSuperAdmin bool      `json:"is_super_admin"`
}
