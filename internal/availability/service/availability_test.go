package service

import (
	"context"
	"testing"
	"time"

	hourserrors "groundbook/internal/operatinghours/errors"
	"groundbook/pkg/clock"
	"groundbook/pkg/config"
	mongotx "groundbook/pkg/db/mongo"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockGroundRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Ground, error)
}

func (m *mockGroundRepository) Create(ctx context.Context, ground *model.Ground) error {
	return nil
}

func (m *mockGroundRepository) FindByID(ctx context.Context, id string) (*model.Ground, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Ground{ID: id, Name: "Test Ground", PricePerHour: 1500}, nil
}

func (m *mockGroundRepository) FindAll(ctx context.Context, city string, limit int, offset int64) ([]*model.Ground, error) {
	return nil, nil
}

func (m *mockGroundRepository) Count(ctx context.Context, city string) (int64, error) {
	return 0, nil
}

func (m *mockGroundRepository) Update(ctx context.Context, id string, ground *model.Ground) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockGroundRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockHoursRepository struct {
	findRuleFunc func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error)
}

func (m *mockHoursRepository) FindByGround(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error) {
	return nil, nil
}

func (m *mockHoursRepository) FindRule(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
	if m.findRuleFunc != nil {
		return m.findRuleFunc(ctx, groundID, dayOfWeek)
	}
	return nil, hourserrors.ErrNotFound
}

func (m *mockHoursRepository) Upsert(ctx context.Context, rule *model.OperatingHoursRule) error {
	return nil
}

type mockBookingRepository struct {
	findConfirmedSlotsFunc func(ctx context.Context, groundID, date string) ([]string, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) FindConfirmedSlots(ctx context.Context, groundID, date string) ([]string, error) {
	if m.findConfirmedSlotsFunc != nil {
		return m.findConfirmedSlotsFunc(ctx, groundID, date)
	}
	return nil, nil
}

func (m *mockBookingRepository) CancelConfirmed(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// 2025-06-16 is a Monday; the fixed clock reads 10:30 local time.
func fixedMondayClock() clock.Clock {
	return clock.NewFixed(time.Date(2025, 6, 16, 10, 30, 0, 0, time.FixedZone(clock.ZoneName, 5*3600)))
}

func openRule(start, end string, duration int) *model.OperatingHoursRule {
	return &model.OperatingHoursRule{
		GroundID:            "64b000000000000000000001",
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: duration,
	}
}

func newTestService(grounds *mockGroundRepository, hours *mockHoursRepository, bookings *mockBookingRepository) *availabilityService {
	return &availabilityService{
		groundsRepo:  grounds,
		hoursRepo:    hours,
		bookingsRepo: bookings,
		clock:        fixedMondayClock(),
		cfg:          testConfig(),
	}
}

func TestResolve_ClosedDayYieldsEmptyGrid(t *testing.T) {
	hours := &mockHoursRepository{
		findRuleFunc: func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
			rule := openRule("06:00", "23:00", 60)
			rule.IsClosed = true
			return rule, nil
		},
	}
	svc := newTestService(&mockGroundRepository{}, hours, &mockBookingRepository{})

	availability, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(availability.Slots) != 0 {
		t.Errorf("expected empty grid for closed day, got %d slots", len(availability.Slots))
	}
}

func TestResolve_AbsentRuleYieldsEmptyGrid(t *testing.T) {
	svc := newTestService(&mockGroundRepository{}, &mockHoursRepository{}, &mockBookingRepository{})

	availability, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(availability.Slots) != 0 {
		t.Errorf("expected empty grid for unconfigured day, got %d slots", len(availability.Slots))
	}
}

func TestResolve_BookedSlotsUnavailable(t *testing.T) {
	hours := &mockHoursRepository{
		findRuleFunc: func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
			return openRule("06:00", "10:00", 60), nil
		},
	}
	bookings := &mockBookingRepository{
		findConfirmedSlotsFunc: func(ctx context.Context, groundID, date string) ([]string, error) {
			return []string{"07:00"}, nil
		},
	}
	svc := newTestService(&mockGroundRepository{}, hours, bookings)

	availability, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(availability.Slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(availability.Slots))
	}
	for _, s := range availability.Slots {
		want := s.Slot != "07:00"
		if s.Available != want {
			t.Errorf("slot %s: expected available=%v, got %v", s.Slot, want, s.Available)
		}
	}
}

func TestResolve_ElapsedFilterAppliesOnlyToday(t *testing.T) {
	hours := &mockHoursRepository{
		findRuleFunc: func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
			return openRule("09:00", "13:00", 60), nil
		},
	}
	svc := newTestService(&mockGroundRepository{}, hours, &mockBookingRepository{})

	// Today at 10:30: 09:00 and 10:00 have started, 11:00 and 12:00 have not.
	today, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantToday := map[string]bool{"09:00": false, "10:00": false, "11:00": true, "12:00": true}
	for _, s := range today.Slots {
		if s.Available != wantToday[s.Slot] {
			t.Errorf("today slot %s: expected available=%v, got %v", s.Slot, wantToday[s.Slot], s.Available)
		}
	}

	// Tomorrow: same wall-clock slots are all open.
	tomorrow, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range tomorrow.Slots {
		if !s.Available {
			t.Errorf("tomorrow slot %s: expected available", s.Slot)
		}
	}
}

func TestResolve_CancellationFreesSlot(t *testing.T) {
	hours := &mockHoursRepository{
		findRuleFunc: func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
			return openRule("06:00", "09:00", 60), nil
		},
	}

	confirmed := []string{"06:00"}
	bookings := &mockBookingRepository{
		findConfirmedSlotsFunc: func(ctx context.Context, groundID, date string) ([]string, error) {
			return confirmed, nil
		},
	}
	svc := newTestService(&mockGroundRepository{}, hours, bookings)

	before, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before.Slots[0].Available {
		t.Fatal("expected 06:00 to be booked before cancellation")
	}

	// Only CONFIRMED rows count, so a cancelled booking vanishes from the
	// ledger query and the slot reopens.
	confirmed = nil
	after, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !after.Slots[0].Available {
		t.Error("expected 06:00 to be available after cancellation")
	}
}

func TestResolve_PastDateRejected(t *testing.T) {
	svc := newTestService(&mockGroundRepository{}, &mockHoursRepository{}, &mockBookingRepository{})

	_, err := svc.Resolve(context.Background(), "64b000000000000000000001", "2025-06-15")
	if err == nil {
		t.Fatal("expected error for past date")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodePastSlot {
		t.Errorf("expected code %s, got %s", apperrors.CodePastSlot, appErr.Code)
	}
}

func TestResolve_InvalidDateRejected(t *testing.T) {
	svc := newTestService(&mockGroundRepository{}, &mockHoursRepository{}, &mockBookingRepository{})

	for _, date := range []string{"16-06-2025", "2025/06/16", "not-a-date", ""} {
		_, err := svc.Resolve(context.Background(), "64b000000000000000000001", date)
		if err == nil {
			t.Errorf("expected error for date %q", date)
			continue
		}
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("date %q: expected code %s, got %s", date, apperrors.CodeInvalidInput, appErr.Code)
		}
	}
}
