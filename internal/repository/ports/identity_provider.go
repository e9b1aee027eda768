package ports

import (
	"context"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

// IdentityProvider resolves a bearer token to the identity that owns it.
type IdentityProvider interface {
	GetUser(ctx context.Context, token string) (*domain.Identity, error)
}
