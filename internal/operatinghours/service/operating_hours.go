package service

import (
	"context"
	"errors"
	"fmt"

	hourserrors "groundbook/internal/operatinghours/errors"
	"groundbook/internal/operatinghours/repository"
	"groundbook/internal/operatinghours/validator"
	"groundbook/pkg/config"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/model"
	"groundbook/pkg/timeslot"
)

type OperatingHoursService interface {
	GetByGround(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error)
	GetRule(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error)
	Upsert(ctx context.Context, rule *model.OperatingHoursRule) error
	UpsertBatch(ctx context.Context, groundID string, rules []*model.OperatingHoursRule) error
	SeedDefaults(ctx context.Context, groundID string) error
}

type operatingHoursService struct {
	repo      repository.OperatingHoursRepository
	validator *validator.OperatingHoursValidator
	cfg       *config.Config
}

func NewOperatingHoursService(
	repo repository.OperatingHoursRepository,
	validator *validator.OperatingHoursValidator,
	cfg *config.Config,
) OperatingHoursService {
	return &operatingHoursService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *operatingHoursService) GetByGround(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error) {
	if groundID == "" {
		return nil, apperrors.InvalidInput("Ground ID cannot be empty")
	}

	rules, err := s.repo.FindByGround(ctx, groundID)
	if err != nil {
		s.cfg.Log.Error("Failed to list operating hours", "ground_id", groundID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve operating hours", err)
	}

	for _, rule := range rules {
		rule.DayName = timeslot.DayNames[rule.DayOfWeek]
	}
	return rules, nil
}

// GetRule returns the configuration for one weekday. An absent rule is a
// NOT_FOUND outcome; callers treat it as the ground being closed that day.
func (s *operatingHoursService) GetRule(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
	if groundID == "" {
		return nil, apperrors.InvalidInput("Ground ID cannot be empty")
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("day_of_week must be 0-6, got %d", dayOfWeek))
	}

	rule, err := s.repo.FindRule(ctx, groundID, dayOfWeek)
	if err != nil {
		if errors.Is(err, hourserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Operating hours rule")
		}
		return nil, apperrors.Internal("Failed to retrieve operating hours rule", err)
	}

	rule.DayName = timeslot.DayNames[rule.DayOfWeek]
	return rule, nil
}

func (s *operatingHoursService) Upsert(ctx context.Context, rule *model.OperatingHoursRule) error {
	s.applyDefaults(rule)
	if err := s.validator.Validate(rule); err != nil {
		s.cfg.Log.Warn("Operating hours validation failed", "ground_id", rule.GroundID, "error", err)
		return apperrors.Validation("Operating hours validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Upsert(ctx, rule); err != nil {
		s.cfg.Log.Error("Failed to upsert operating hours rule",
			"ground_id", rule.GroundID,
			"day_of_week", rule.DayOfWeek,
			"error", err,
		)
		return apperrors.Internal("Failed to save operating hours rule", err)
	}

	s.cfg.Log.Info("Operating hours rule saved",
		"ground_id", rule.GroundID,
		"day_of_week", rule.DayOfWeek,
		"is_closed", rule.IsClosed,
	)
	return nil
}

// UpsertBatch replaces the configuration for every weekday listed. All
// rules are validated before any write, so a bad entry rejects the whole
// batch.
func (s *operatingHoursService) UpsertBatch(ctx context.Context, groundID string, rules []*model.OperatingHoursRule) error {
	if groundID == "" {
		return apperrors.InvalidInput("Ground ID cannot be empty")
	}
	if len(rules) == 0 {
		return apperrors.InvalidInput("At least one operating hours rule is required")
	}

	seen := make(map[int]bool, len(rules))
	for _, rule := range rules {
		rule.GroundID = groundID
		s.applyDefaults(rule)
		if err := s.validator.Validate(rule); err != nil {
			return apperrors.Validation("Operating hours validation failed", map[string]any{
				"day_of_week": rule.DayOfWeek,
				"error":       err.Error(),
			})
		}
		if seen[rule.DayOfWeek] {
			return apperrors.InvalidInput(fmt.Sprintf("duplicate rule for day_of_week %d", rule.DayOfWeek))
		}
		seen[rule.DayOfWeek] = true
	}

	for _, rule := range rules {
		if err := s.repo.Upsert(ctx, rule); err != nil {
			s.cfg.Log.Error("Failed to upsert operating hours rule",
				"ground_id", groundID,
				"day_of_week", rule.DayOfWeek,
				"error", err,
			)
			return apperrors.Internal("Failed to save operating hours rules", err)
		}
	}

	s.cfg.Log.Info("Operating hours batch saved", "ground_id", groundID, "rules", len(rules))
	return nil
}

// SeedDefaults provisions all seven weekdays as open with the configured
// default window. Called once when a ground is created.
func (s *operatingHoursService) SeedDefaults(ctx context.Context, groundID string) error {
	for day := 0; day < 7; day++ {
		rule := &model.OperatingHoursRule{
			GroundID:            groundID,
			DayOfWeek:           day,
			IsClosed:            false,
			StartTime:           s.cfg.DefaultOpenTime,
			EndTime:             s.cfg.DefaultCloseTime,
			SlotDurationMinutes: s.cfg.DefaultSlotDurationMin,
		}
		if err := s.repo.Upsert(ctx, rule); err != nil {
			return fmt.Errorf("failed to seed day %d: %w", day, err)
		}
	}

	s.cfg.Log.Info("Default operating hours seeded",
		"ground_id", groundID,
		"open", s.cfg.DefaultOpenTime,
		"close", s.cfg.DefaultCloseTime,
		"slot_duration_min", s.cfg.DefaultSlotDurationMin,
	)
	return nil
}

func (s *operatingHoursService) applyDefaults(rule *model.OperatingHoursRule) {
	if rule.SlotDurationMinutes == 0 {
		rule.SlotDurationMinutes = s.cfg.DefaultSlotDurationMin
	}
	if rule.IsClosed {
		rule.StartTime = ""
		rule.EndTime = ""
	}
}
