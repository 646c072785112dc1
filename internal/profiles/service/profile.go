package service

import (
	"context"
	"errors"

	"groundbook/internal/profiles/repository"
	"groundbook/pkg/config"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/model"
	"groundbook/pkg/sanitizer"
)

type ProfileService interface {
	Get(ctx context.Context, identity model.Identity) (*model.UserProfile, error)
	Put(ctx context.Context, identity model.Identity, profile *model.UserProfile) (*model.UserProfile, error)
}

type profileService struct {
	repo repository.ProfileRepository
	cfg  *config.Config
}

func NewProfileService(repo repository.ProfileRepository, cfg *config.Config) ProfileService {
	return &profileService{repo: repo, cfg: cfg}
}

func (s *profileService) Get(ctx context.Context, identity model.Identity) (*model.UserProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Profile")
		}
		s.cfg.Log.Error("Failed to retrieve profile", "user_id", identity.UserID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}

	return profile, nil
}

// Put saves the caller's contact details. The phone number is normalized
// to E.164; input that cannot be parsed as a phone number for a supported
// region is rejected rather than stored raw.
func (s *profileService) Put(ctx context.Context, identity model.Identity, profile *model.UserProfile) (*model.UserProfile, error) {
	profile.UserID = identity.UserID
	profile.Name = sanitizer.NormalizeName(profile.Name)

	if profile.Name == "" {
		return nil, apperrors.InvalidInput("Name cannot be empty")
	}

	normalized := sanitizer.NormalizePhone(profile.Phone)
	if normalized == "" {
		return nil, apperrors.InvalidInput("Phone number is not valid")
	}
	profile.Phone = normalized

	if err := s.repo.Upsert(ctx, profile); err != nil {
		s.cfg.Log.Error("Failed to save profile", "user_id", identity.UserID, "error", err)
		return nil, apperrors.Internal("Failed to save profile", err)
	}

	s.cfg.Log.Info("Profile saved", "user_id", identity.UserID)
	return profile, nil
}
