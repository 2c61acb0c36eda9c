package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/smiledesk/dental-api/internal/model"
	"github.com/smiledesk/dental-api/internal/repository"
)

const (
	profileTTL      = 15 * time.Minute
	cleanupInterval = 30 * time.Minute
)

// Service serves the session access profile: the flat role/permission set
// a client fetches once per session. Profiles are cached in-process so
// repeated fetches within a session don't hit the database.
type Service struct {
	userRepo repository.UserRepository
	profiles *cache.Cache
}

func NewService(userRepo repository.UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
		profiles: cache.New(profileTTL, cleanupInterval),
	}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.AccessProfile, error) {
	key := userID.String()
	if cached, ok := s.profiles.Get(key); ok {
		return cached.(*model.AccessProfile), nil
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	profile := &model.AccessProfile{
		UserID:      user.ID,
		Email:       user.Email,
		Roles:       user.Roles,
		Permissions: user.Permissions,
	}
	s.profiles.Set(key, profile, cache.DefaultExpiration)
	return profile, nil
}

// InvalidateProfile drops the cached profile after a grant change so the
// next fetch sees fresh permissions.
func (s *Service) InvalidateProfile(userID uuid.UUID) {
	s.profiles.Delete(userID.String())
}
