package service

import (
	"context"
	"testing"
	"time"

	hourserrors "groundbook/internal/operatinghours/errors"
	"groundbook/internal/operatinghours/validator"
	"groundbook/pkg/config"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

const testGroundID = "64b000000000000000000001"

type mockHoursRepository struct {
	findByGroundFunc func(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error)
	findRuleFunc     func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error)
	upsertFunc       func(ctx context.Context, rule *model.OperatingHoursRule) error
	upserted         []*model.OperatingHoursRule
}

func (m *mockHoursRepository) FindByGround(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error) {
	if m.findByGroundFunc != nil {
		return m.findByGroundFunc(ctx, groundID)
	}
	return nil, nil
}

func (m *mockHoursRepository) FindRule(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
	if m.findRuleFunc != nil {
		return m.findRuleFunc(ctx, groundID, dayOfWeek)
	}
	return nil, hourserrors.ErrNotFound
}

func (m *mockHoursRepository) Upsert(ctx context.Context, rule *model.OperatingHoursRule) error {
	if m.upsertFunc != nil {
		if err := m.upsertFunc(ctx, rule); err != nil {
			return err
		}
	}
	copied := *rule
	m.upserted = append(m.upserted, &copied)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:            5 * time.Second,
		WriteTimeout:           5 * time.Second,
		DefaultOpenTime:        "06:00",
		DefaultCloseTime:       "23:00",
		DefaultSlotDurationMin: 60,
	}
}

func newTestService(repo *mockHoursRepository) *operatingHoursService {
	cfg := testConfig()
	return &operatingHoursService{
		repo:      repo,
		validator: validator.NewOperatingHoursValidator(cfg.Log),
		cfg:       cfg,
	}
}

func openRule(day int, start, end string) *model.OperatingHoursRule {
	return &model.OperatingHoursRule{
		GroundID:            testGroundID,
		DayOfWeek:           day,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: 60,
	}
}

func TestUpsert_OpenDayRequiresWindow(t *testing.T) {
	svc := newTestService(&mockHoursRepository{})

	rule := &model.OperatingHoursRule{GroundID: testGroundID, DayOfWeek: 2}
	err := svc.Upsert(context.Background(), rule)
	if err == nil {
		t.Fatal("expected validation error for open day without times")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestUpsert_ClosedDayNeedsNoWindow(t *testing.T) {
	repo := &mockHoursRepository{}
	svc := newTestService(repo)

	rule := &model.OperatingHoursRule{GroundID: testGroundID, DayOfWeek: 6, IsClosed: true}
	if err := svc.Upsert(context.Background(), rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(repo.upserted))
	}
	// A closed rule never carries a stale window.
	if repo.upserted[0].StartTime != "" || repo.upserted[0].EndTime != "" {
		t.Errorf("expected cleared window on closed rule, got %q-%q",
			repo.upserted[0].StartTime, repo.upserted[0].EndTime)
	}
}

func TestUpsert_EndBeforeStartRejected(t *testing.T) {
	svc := newTestService(&mockHoursRepository{})

	err := svc.Upsert(context.Background(), openRule(1, "18:00", "09:00"))
	if err == nil {
		t.Fatal("expected validation error for inverted window")
	}
}

func TestUpsert_DefaultDurationApplied(t *testing.T) {
	repo := &mockHoursRepository{}
	svc := newTestService(repo)

	rule := &model.OperatingHoursRule{
		GroundID:  testGroundID,
		DayOfWeek: 3,
		StartTime: "08:00",
		EndTime:   "20:00",
	}
	if err := svc.Upsert(context.Background(), rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.upserted[0].SlotDurationMinutes != 60 {
		t.Errorf("expected default duration 60, got %d", repo.upserted[0].SlotDurationMinutes)
	}
}

func TestUpsertBatch_DuplicateDayRejected(t *testing.T) {
	repo := &mockHoursRepository{}
	svc := newTestService(repo)

	rules := []*model.OperatingHoursRule{
		openRule(1, "06:00", "23:00"),
		openRule(1, "08:00", "20:00"),
	}
	err := svc.UpsertBatch(context.Background(), testGroundID, rules)
	if err == nil {
		t.Fatal("expected error for duplicate day in batch")
	}
	if len(repo.upserted) != 0 {
		t.Errorf("expected no writes on rejected batch, got %d", len(repo.upserted))
	}
}

func TestUpsertBatch_BadEntryRejectsWholeBatch(t *testing.T) {
	repo := &mockHoursRepository{}
	svc := newTestService(repo)

	rules := []*model.OperatingHoursRule{
		openRule(1, "06:00", "23:00"),
		openRule(2, "23:00", "06:00"),
	}
	err := svc.UpsertBatch(context.Background(), testGroundID, rules)
	if err == nil {
		t.Fatal("expected error for invalid entry")
	}
	if len(repo.upserted) != 0 {
		t.Errorf("expected no writes on rejected batch, got %d", len(repo.upserted))
	}
}

func TestSeedDefaults_CoversAllSevenDays(t *testing.T) {
	repo := &mockHoursRepository{}
	svc := newTestService(repo)

	if err := svc.SeedDefaults(context.Background(), testGroundID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.upserted) != 7 {
		t.Fatalf("expected 7 seeded rules, got %d", len(repo.upserted))
	}
	seen := make(map[int]bool)
	for _, rule := range repo.upserted {
		seen[rule.DayOfWeek] = true
		if rule.IsClosed {
			t.Errorf("day %d: expected open by default", rule.DayOfWeek)
		}
		if rule.StartTime != "06:00" || rule.EndTime != "23:00" || rule.SlotDurationMinutes != 60 {
			t.Errorf("day %d: unexpected defaults %s-%s/%d",
				rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
		}
	}
	if len(seen) != 7 {
		t.Errorf("expected all 7 weekdays seeded, got %d distinct", len(seen))
	}
}

func TestGetByGround_AttachesDayNames(t *testing.T) {
	repo := &mockHoursRepository{
		findByGroundFunc: func(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error) {
			return []*model.OperatingHoursRule{
				{GroundID: groundID, DayOfWeek: 0},
				{GroundID: groundID, DayOfWeek: 6},
			}, nil
		},
	}
	svc := newTestService(repo)

	rules, err := svc.GetByGround(context.Background(), testGroundID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules[0].DayName != "Monday" || rules[1].DayName != "Sunday" {
		t.Errorf("unexpected day names: %q, %q", rules[0].DayName, rules[1].DayName)
	}
}
