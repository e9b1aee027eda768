package jwtauth

import (
	"context"
	"fmt"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

// Provider verifies HS256 access tokens locally with the shared signing secret.
type Provider struct {
	jwt *util.JWTManager
}

var _ ports.IdentityProvider = (*Provider)(nil)

func NewProvider(manager *util.JWTManager) *Provider {
	return &Provider{jwt: manager}
}

func (p *Provider) GetUser(_ context.Context, token string) (*domain.Identity, error) {
	claims, err := p.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("jwt: invalid subject: %w", err)
	}
	return &domain.Identity{
		ID:           id,
		Email:        claims.Email,
		IsSuperAdmin: claims.IsSuperAdmin,
	}, nil
}
