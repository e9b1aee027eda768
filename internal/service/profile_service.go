package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type ProfileService struct {
	profiles ports.ProfileRepository
}

func NewProfileService(profiles ports.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	return s.profiles.List(ctx, limit, offset)
}

func (s *ProfileService) SetRole(ctx context.Context, actorID, targetID uuid.UUID, role domain.Role) (*domain.Profile, error) {
	if actorID == targetID && role != domain.RoleAdmin {
		return nil, ErrSelfDemotion
	}
	profile, err := s.profiles.UpdateRole(ctx, targetID, role)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
