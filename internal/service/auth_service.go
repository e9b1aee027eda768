package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

// AuthService resolves bearer tokens and decides admin access. It keeps no state between calls.
type AuthService struct {
	identities ports.IdentityProvider
	profiles   ports.ProfileRepository
	policy     domain.AdminPolicy
}

func NewAuthService(identities ports.IdentityProvider, profiles ports.ProfileRepository, policy domain.AdminPolicy) *AuthService {
	if policy == "" {
		policy = domain.AdminPolicyProviderSuperAdmin
	}
	return &AuthService{identities: identities, profiles: profiles, policy: policy}
}

func (s *AuthService) Policy() domain.AdminPolicy {
	return s.policy
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	identity, err := s.identities.GetUser(ctx, token)
	if err != nil || identity == nil {
		return nil, ErrInvalidToken
	}
	return identity, nil
}

// Profile returns the caller's profile, or nil when no profile row exists.
func (s *AuthService) Profile(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, identity.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrProfileLookup, err)
	}
	return profile, nil
}

func (s *AuthService) AuthorizeAdmin(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return ErrUnauthorized
	}
	profile, err := s.Profile(ctx, identity)
	if err != nil {
		return err
	}
	var role domain.Role
	if profile != nil {
		role = profile.Role
	}
	if !s.policy.Grants(role, *identity) {
		return ErrForbidden
	}
	return nil
}
