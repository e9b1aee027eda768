package domain

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Country        string    `db:"country" json:"country"`
	Description    *string   `db:"description" json:"description,omitempty"`
	ImageURL       *string   `db:"image_url" json:"image_url,omitempty"`
	PricePerPerson float64   `db:"price_per_person" json:"price_per_person"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// DestinationFields carries a create or partial update. Nil fields are left unchanged on update.
type DestinationFields struct {
	Name           *string  `json:"name,omitempty"`
	Country        *string  `json:"country,omitempty"`
	Description    *string  `json:"description,omitempty"`
	ImageURL       *string  `json:"image_url,omitempty"`
	PricePerPerson *float64 `json:"price_per_person,omitempty"`
}
