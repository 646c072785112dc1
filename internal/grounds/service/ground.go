package service

import (
	"context"
	"errors"
	"sync"

	groundserrors "groundbook/internal/grounds/errors"
	"groundbook/internal/grounds/repository"
	"groundbook/internal/grounds/validator"
	"groundbook/pkg/config"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/model"
	"groundbook/pkg/sanitizer"
)

// HoursSeeder provisions the default weekly operating-hours rules for a
// newly created ground. Implemented by the operating-hours service.
type HoursSeeder interface {
	SeedDefaults(ctx context.Context, groundID string) error
}

type GroundService interface {
	Create(ctx context.Context, ground *model.Ground) error
	GetByID(ctx context.Context, id string) (*model.Ground, error)
	GetAll(ctx context.Context, city string, limit int, offset int64) ([]*model.Ground, int64, error)
	Update(ctx context.Context, id string, updates *model.GroundUpdate) error
}

type groundService struct {
	repo      repository.GroundRepository
	seeder    HoursSeeder
	validator *validator.GroundValidator
	cfg       *config.Config
}

func NewGroundService(
	repo repository.GroundRepository,
	seeder HoursSeeder,
	validator *validator.GroundValidator,
	cfg *config.Config,
) GroundService {
	return &groundService{
		repo:      repo,
		seeder:    seeder,
		validator: validator,
		cfg:       cfg,
	}
}

// Create persists the ground and then seeds a full week of default
// operating-hours rules so the ground is bookable immediately. A seeding
// failure is logged but does not roll back the ground; rules can be set
// through the admin endpoint afterwards.
func (s *groundService) Create(ctx context.Context, ground *model.Ground) error {
	s.sanitize(ground)
	if err := s.validator.Validate(ground); err != nil {
		s.cfg.Log.Warn("Ground validation failed", "error", err)
		return apperrors.Validation("Ground validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, ground); err != nil {
		s.cfg.Log.Error("Failed to create ground", "error", err)
		return apperrors.Internal("Failed to create ground", err)
	}

	if err := s.seeder.SeedDefaults(ctx, ground.ID); err != nil {
		s.cfg.Log.Error("Failed to seed default operating hours", "ground_id", ground.ID, "error", err)
	}

	s.cfg.Log.Info("Ground created successfully",
		"id", ground.ID,
		"name", ground.Name,
		"city", ground.City,
	)
	return nil
}

func (s *groundService) GetByID(ctx context.Context, id string) (*model.Ground, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Ground ID cannot be empty")
	}

	ground, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, groundserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Ground", id)
		}
		if errors.Is(err, groundserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid ground ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve ground", err)
	}

	return ground, nil
}

func (s *groundService) GetAll(ctx context.Context, city string, limit int, offset int64) ([]*model.Ground, int64, error) {
	city = sanitizer.NormalizeCity(city)

	var count int64
	var grounds []*model.Ground
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, city)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count grounds", "error", errCount)
			errCount = apperrors.Internal("Failed to count grounds", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		grounds, errFind = s.repo.FindAll(ctx, city, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list grounds", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve grounds", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return grounds, count, nil
}

func (s *groundService) Update(ctx context.Context, id string, updates *model.GroundUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Ground ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, groundserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Ground", id)
		}
		if errors.Is(err, groundserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid ground ID format")
		}
		return apperrors.Internal("Failed to check ground existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Ground update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeGroundUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Ground validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, groundserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Ground", id)
		}
		s.cfg.Log.Error("Failed to update ground", "id", id, "error", err)
		return apperrors.Internal("Failed to update ground", err)
	}

	s.cfg.Log.Info("Ground updated successfully", "id", id)
	return nil
}

func (s *groundService) sanitize(g *model.Ground) {
	g.Name = sanitizer.NormalizeName(g.Name)
	g.City = sanitizer.NormalizeCity(g.City)
	g.Location = sanitizer.TrimAndNormalize(g.Location)
	g.Description = sanitizer.TrimAndNormalize(g.Description)
}

func (s *groundService) mergeGroundUpdates(existing *model.Ground, updates *model.GroundUpdate) *model.Ground {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Location != "" {
		merged.Location = updates.Location
	}
	if updates.PricePerHour != nil {
		merged.PricePerHour = *updates.PricePerHour
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.ImageURL != "" {
		merged.ImageURL = updates.ImageURL
	}
	if updates.SurfaceType != "" {
		merged.SurfaceType = updates.SurfaceType
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Dimensions != "" {
		merged.Dimensions = updates.Dimensions
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}

	return &merged
}
