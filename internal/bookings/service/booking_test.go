package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "groundbook/internal/bookings/errors"
	"groundbook/internal/bookings/validator"
	groundserrors "groundbook/internal/grounds/errors"
	"groundbook/internal/notifications"
	hourserrors "groundbook/internal/operatinghours/errors"
	profilesrepo "groundbook/internal/profiles/repository"
	"groundbook/pkg/clock"
	"groundbook/pkg/config"
	mongotx "groundbook/pkg/db/mongo"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/logger"
	"groundbook/pkg/model"
)

const (
	testGroundID = "64b000000000000000000001"
	testUserID   = "auth0|user-1"
)

type mockBookingRepository struct {
	createFunc             func(ctx context.Context, booking *model.Booking) error
	findByIDFunc           func(ctx context.Context, id string) (*model.Booking, error)
	findConfirmedSlotsFunc func(ctx context.Context, groundID, date string) ([]string, error)
	cancelConfirmedFunc    func(ctx context.Context, id string) error
	created                []*model.Booking
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, booking); err != nil {
			return err
		}
	}
	booking.ID = "64b00000000000000000aa01"
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
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
	if m.cancelConfirmedFunc != nil {
		return m.cancelConfirmedFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

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
	return &model.Ground{ID: id, Name: "City Arena", PricePerHour: 2500}, nil
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
	return &model.OperatingHoursRule{
		GroundID:            groundID,
		DayOfWeek:           dayOfWeek,
		StartTime:           "06:00",
		EndTime:             "23:00",
		SlotDurationMinutes: 60,
	}, nil
}

func (m *mockHoursRepository) Upsert(ctx context.Context, rule *model.OperatingHoursRule) error {
	return nil
}

type mockProfileRepository struct {
	findByUserIDFunc func(ctx context.Context, userID string) (*model.UserProfile, error)
}

func (m *mockProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return &model.UserProfile{UserID: userID, Name: "Ayesha Khan", Phone: "+923001234567"}, nil
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	return nil
}

type mockPolicy struct {
	admin bool
}

func (m *mockPolicy) IsAdmin(ctx context.Context, identity model.Identity) bool {
	return m.admin
}

type mockPublisher struct {
	events []notifications.BookingEvent
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, event notifications.BookingEvent) error {
	m.events = append(m.events, event)
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
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// 2025-06-16 is a Monday; the fixed clock reads 10:30 local time.
func fixedMondayClock() clock.Clock {
	return clock.NewFixed(time.Date(2025, 6, 16, 10, 30, 0, 0, time.FixedZone(clock.ZoneName, 5*3600)))
}

type serviceDeps struct {
	bookings  *mockBookingRepository
	grounds   *mockGroundRepository
	hours     *mockHoursRepository
	profiles  *mockProfileRepository
	policy    *mockPolicy
	publisher *mockPublisher
}

func newTestService(t *testing.T, deps serviceDeps) *bookingService {
	t.Helper()
	cfg := testConfig()
	if deps.bookings == nil {
		deps.bookings = &mockBookingRepository{}
	}
	if deps.grounds == nil {
		deps.grounds = &mockGroundRepository{}
	}
	if deps.hours == nil {
		deps.hours = &mockHoursRepository{}
	}
	if deps.profiles == nil {
		deps.profiles = &mockProfileRepository{}
	}
	if deps.policy == nil {
		deps.policy = &mockPolicy{}
	}
	if deps.publisher == nil {
		deps.publisher = &mockPublisher{}
	}
	return &bookingService{
		repo:        deps.bookings,
		groundsRepo: deps.grounds,
		hoursRepo:   deps.hours,
		profileRepo: deps.profiles,
		validator:   validator.NewBookingValidator(cfg.Log),
		policy:      deps.policy,
		publisher:   deps.publisher,
		clock:       fixedMondayClock(),
		cfg:         cfg,
	}
}

func identity() model.Identity {
	return model.Identity{UserID: testUserID, Email: "user@example.com"}
}

func request(date string, slots ...string) *model.BookingRequest {
	return &model.BookingRequest{GroundID: testGroundID, Date: date, Slots: slots}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func TestBook_Success(t *testing.T) {
	deps := serviceDeps{bookings: &mockBookingRepository{}, publisher: &mockPublisher{}}
	svc := newTestService(t, deps)

	bookings, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00", "15:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	for _, b := range bookings {
		if b.Status != model.StatusConfirmed {
			t.Errorf("expected status %s, got %s", model.StatusConfirmed, b.Status)
		}
		if b.CustomerName != "Ayesha Khan" || b.CustomerPhone != "+923001234567" {
			t.Errorf("expected customer details from profile, got %q / %q", b.CustomerName, b.CustomerPhone)
		}
	}
	if len(deps.publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(deps.publisher.events))
	}
	if deps.publisher.events[0].EventType != notifications.EventBookingConfirmed {
		t.Errorf("unexpected event type %s", deps.publisher.events[0].EventType)
	}
}

func TestBook_PriceSnapshot(t *testing.T) {
	price := 2500.0
	grounds := &mockGroundRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Ground, error) {
			return &model.Ground{ID: id, Name: "City Arena", PricePerHour: price}, nil
		},
	}
	svc := newTestService(t, serviceDeps{grounds: grounds})

	bookings, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings[0].PriceAtBooking != 2500.0 {
		t.Fatalf("expected price 2500, got %v", bookings[0].PriceAtBooking)
	}

	// Raising the ground price later must not touch the stored snapshot.
	price = 9000.0
	if bookings[0].PriceAtBooking != 2500.0 {
		t.Error("price snapshot changed after ground price update")
	}
}

func TestBook_MissingProfileGate(t *testing.T) {
	profiles := &mockProfileRepository{
		findByUserIDFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
			return nil, profilesrepo.ErrNotFound
		},
	}
	svc := newTestService(t, serviceDeps{profiles: profiles})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	expectCode(t, err, apperrors.CodeProfileIncomplete)

	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 428 {
		t.Errorf("expected HTTP 428, got %d", appErr.StatusCode())
	}
}

func TestBook_IncompleteProfileGate(t *testing.T) {
	profiles := &mockProfileRepository{
		findByUserIDFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
			return &model.UserProfile{UserID: userID, Name: "Ayesha Khan"}, nil
		},
	}
	svc := newTestService(t, serviceDeps{profiles: profiles})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	expectCode(t, err, apperrors.CodeProfileIncomplete)
}

func TestBook_PastDateRejected(t *testing.T) {
	svc := newTestService(t, serviceDeps{})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-15", "14:00"))
	expectCode(t, err, apperrors.CodePastSlot)
}

func TestBook_ElapsedSlotRejectedToday(t *testing.T) {
	svc := newTestService(t, serviceDeps{})

	// Clock reads 10:30; a 10:00 slot today has already started.
	_, err := svc.Book(context.Background(), identity(), request("2025-06-16", "10:00"))
	expectCode(t, err, apperrors.CodePastSlot)

	// The identical wall-clock slot tomorrow is fine.
	if _, err := svc.Book(context.Background(), identity(), request("2025-06-17", "10:00")); err != nil {
		t.Fatalf("unexpected error for tomorrow: %v", err)
	}
}

func TestBook_ElapsedSlotRejectedBeforeProfileGate(t *testing.T) {
	// Temporal checks come before the profile gate: a user without a
	// profile booking an already-started slot must hear PAST_SLOT, since
	// completing the profile would not make the request succeed.
	profiles := &mockProfileRepository{
		findByUserIDFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
			return nil, profilesrepo.ErrNotFound
		},
	}
	svc := newTestService(t, serviceDeps{profiles: profiles})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-16", "09:00"))
	expectCode(t, err, apperrors.CodePastSlot)
}

func TestBook_ClosedDayRejected(t *testing.T) {
	hours := &mockHoursRepository{
		findRuleFunc: func(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
			return nil, hourserrors.ErrNotFound
		},
	}
	svc := newTestService(t, serviceDeps{hours: hours})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	expectCode(t, err, apperrors.CodeOutsideHours)
}

func TestBook_SlotOffGridRejected(t *testing.T) {
	svc := newTestService(t, serviceDeps{})

	// The grid is hourly on the hour; 14:30 never appears on it.
	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:30"))
	expectCode(t, err, apperrors.CodeOutsideHours)
}

func TestBook_GroundNotFound(t *testing.T) {
	grounds := &mockGroundRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Ground, error) {
			return nil, groundserrors.ErrNotFound
		},
	}
	svc := newTestService(t, serviceDeps{grounds: grounds})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	expectCode(t, err, apperrors.CodeNotFound)
}

func TestBook_ConflictFromPreCheck(t *testing.T) {
	bookings := &mockBookingRepository{
		findConfirmedSlotsFunc: func(ctx context.Context, groundID, date string) ([]string, error) {
			return []string{"14:00"}, nil
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	expectCode(t, err, apperrors.CodeSlotAlreadyBooked)
}

func TestBook_DuplicateKeyTranslated(t *testing.T) {
	// The pre-check saw a free slot but a concurrent insert won the unique
	// index race.
	bookings := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00"))
	expectCode(t, err, apperrors.CodeSlotAlreadyBooked)
}

func TestBook_DuplicateSlotInRequestRejected(t *testing.T) {
	svc := newTestService(t, serviceDeps{})

	_, err := svc.Book(context.Background(), identity(), request("2025-06-17", "14:00", "14:00"))
	expectCode(t, err, apperrors.CodeValidation)
}

func TestCancel_OwnerSucceeds(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:       id,
				GroundID: testGroundID,
				UserID:   testUserID,
				Status:   model.StatusConfirmed,
				Date:     "2025-06-17",
				Slot:     "14:00",
			}, nil
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings})

	if err := svc.Cancel(context.Background(), identity(), "64b00000000000000000aa01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancel_StrangerForbidden(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: "auth0|someone-else", Status: model.StatusConfirmed}, nil
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings})

	err := svc.Cancel(context.Background(), identity(), "64b00000000000000000aa01")
	expectCode(t, err, apperrors.CodeForbidden)
}

func TestCancel_AdminMayCancelAny(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:       id,
				GroundID: testGroundID,
				UserID:   "auth0|someone-else",
				Status:   model.StatusConfirmed,
			}, nil
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings, policy: &mockPolicy{admin: true}})

	if err := svc.Cancel(context.Background(), identity(), "64b00000000000000000aa01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: testUserID, Status: model.StatusCancelled}, nil
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings})

	err := svc.Cancel(context.Background(), identity(), "64b00000000000000000aa01")
	expectCode(t, err, apperrors.CodeAlreadyCancelled)
}

func TestCancel_RaceReportsAlreadyCancelled(t *testing.T) {
	bookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: testUserID, Status: model.StatusConfirmed}, nil
		},
		cancelConfirmedFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrAlreadyCancelled
		},
	}
	svc := newTestService(t, serviceDeps{bookings: bookings})

	err := svc.Cancel(context.Background(), identity(), "64b00000000000000000aa01")
	expectCode(t, err, apperrors.CodeAlreadyCancelled)
}
