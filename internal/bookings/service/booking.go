package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "groundbook/internal/bookings/errors"
	"groundbook/internal/bookings/repository"
	"groundbook/internal/bookings/validator"
	groundserrors "groundbook/internal/grounds/errors"
	groundsrepo "groundbook/internal/grounds/repository"
	"groundbook/internal/notifications"
	hourserrors "groundbook/internal/operatinghours/errors"
	hoursrepo "groundbook/internal/operatinghours/repository"
	profilesrepo "groundbook/internal/profiles/repository"
	"groundbook/pkg/auth"
	"groundbook/pkg/clock"
	"groundbook/pkg/config"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/model"
	"groundbook/pkg/timeslot"
)

type BookingService interface {
	Book(ctx context.Context, identity model.Identity, req *model.BookingRequest) ([]*model.Booking, error)
	GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, error)
	GetMine(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Cancel(ctx context.Context, identity model.Identity, id string) error
}

type bookingService struct {
	repo        repository.BookingRepository
	groundsRepo groundsrepo.GroundRepository
	hoursRepo   hoursrepo.OperatingHoursRepository
	profileRepo profilesrepo.ProfileRepository
	validator   *validator.BookingValidator
	policy      auth.AuthorizationPolicy
	publisher   notifications.Publisher
	clock       clock.Clock
	cfg         *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	groundsRepo groundsrepo.GroundRepository,
	hoursRepo hoursrepo.OperatingHoursRepository,
	profileRepo profilesrepo.ProfileRepository,
	validator *validator.BookingValidator,
	policy auth.AuthorizationPolicy,
	publisher notifications.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:        repo,
		groundsRepo: groundsRepo,
		hoursRepo:   hoursRepo,
		profileRepo: profileRepo,
		validator:   validator,
		policy:      policy,
		publisher:   publisher,
		clock:       clk,
		cfg:         cfg,
	}
}

// Book runs the full admission pipeline for a booking attempt. Checks are
// ordered so the cheapest rejections happen first and the caller always
// sees the most actionable error: structure, then time, then profile, then
// ground and hours conformance, then the conflict check inside the commit
// transaction. All requested slots book together or not at all.
func (s *bookingService) Book(ctx context.Context, identity model.Identity, req *model.BookingRequest) ([]*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "user_id", identity.UserID, "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	today := s.clock.Today()
	if req.Date < today {
		return nil, apperrors.PastSlot("Cannot book a date in the past")
	}
	if req.Date == today {
		nowMin := s.clock.MinuteOfDay()
		for _, slot := range req.Slots {
			slotMin, err := timeslot.ParseHHMM(slot)
			if err != nil {
				return nil, err
			}
			if slotMin <= nowMin {
				return nil, apperrors.PastSlot(fmt.Sprintf("Slot %s has already started", slot))
			}
		}
	}

	profile, err := s.profileRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, profilesrepo.ErrNotFound) {
			return nil, apperrors.ProfileIncomplete()
		}
		return nil, apperrors.Internal("Failed to load user profile", err)
	}
	if !profile.Complete() {
		return nil, apperrors.ProfileIncomplete()
	}

	ground, err := s.groundsRepo.FindByID(ctx, req.GroundID)
	if err != nil {
		if errors.Is(err, groundserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Ground", req.GroundID)
		}
		if errors.Is(err, groundserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid ground ID format")
		}
		return nil, apperrors.Internal("Failed to load ground", err)
	}

	allowed, err := s.allowedSlots(ctx, req.GroundID, req.Date)
	if err != nil {
		return nil, err
	}
	for _, slot := range req.Slots {
		if !slices.Contains(allowed, slot) {
			return nil, apperrors.OutsideOperatingHours(
				fmt.Sprintf("Slot %s is outside the ground's operating hours for that day", slot))
		}
	}

	bookings := make([]*model.Booking, 0, len(req.Slots))
	for _, slot := range req.Slots {
		bookings = append(bookings, &model.Booking{
			GroundID:       req.GroundID,
			Date:           req.Date,
			Slot:           slot,
			CustomerName:   profile.Name,
			CustomerPhone:  profile.Phone,
			UserID:         identity.UserID,
			Status:         model.StatusConfirmed,
			PriceAtBooking: ground.PricePerHour,
		})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		confirmed, err := s.repo.FindConfirmedSlots(sessCtx, req.GroundID, req.Date)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		for _, slot := range req.Slots {
			if slices.Contains(confirmed, slot) {
				return apperrors.SlotAlreadyBooked(slot)
			}
		}

		for _, booking := range bookings {
			if err := s.repo.Create(sessCtx, booking); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					return apperrors.SlotAlreadyBooked(booking.Slot)
				}
				return apperrors.Internal("Failed to create booking", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book slots",
			"user_id", identity.UserID,
			"ground_id", req.GroundID,
			"date", req.Date,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Booking confirmed",
		"user_id", identity.UserID,
		"ground_id", req.GroundID,
		"date", req.Date,
		"slots", req.Slots,
	)

	s.publishEvent(ctx, notifications.EventBookingConfirmed, ground, bookings)

	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != identity.UserID && !s.policy.IsAdmin(ctx, identity) {
		return nil, apperrors.Forbidden("You can only view your own bookings")
	}

	return booking, nil
}

func (s *bookingService) GetMine(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, identity.UserID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count user bookings", "user_id", identity.UserID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, identity.UserID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list user bookings", "user_id", identity.UserID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// Cancel flips a booking to CANCELLED. Owners may cancel their own
// bookings; admins may cancel any. The transition is one-way and the
// freed slot becomes available on the next availability resolution.
func (s *bookingService) Cancel(ctx context.Context, identity model.Identity, id string) error {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != identity.UserID && !s.policy.IsAdmin(ctx, identity) {
		return apperrors.Forbidden("You can only cancel your own bookings")
	}

	if booking.Status == model.StatusCancelled {
		return apperrors.AlreadyCancelled(id)
	}

	if err := s.repo.CancelConfirmed(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrAlreadyCancelled) {
			return apperrors.AlreadyCancelled(id)
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "user_id", identity.UserID)

	booking.Status = model.StatusCancelled
	if ground, gerr := s.groundsRepo.FindByID(ctx, booking.GroundID); gerr == nil {
		s.publishEvent(ctx, notifications.EventBookingCancelled, ground, []*model.Booking{booking})
	}

	return nil
}

func (s *bookingService) findBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// allowedSlots resolves the bookable slot grid for the ground's weekday. A
// missing or closed rule means no slot is ever valid that day.
func (s *bookingService) allowedSlots(ctx context.Context, groundID, date string) ([]string, error) {
	weekday, err := timeslot.WeekdayOf(date)
	if err != nil {
		return nil, err
	}

	rule, err := s.hoursRepo.FindRule(ctx, groundID, weekday)
	if err != nil {
		if errors.Is(err, hourserrors.ErrNotFound) {
			return nil, apperrors.OutsideOperatingHours(
				fmt.Sprintf("The ground is closed on %s", timeslot.DayNames[weekday]))
		}
		return nil, apperrors.Internal("Failed to load operating hours", err)
	}
	if rule.IsClosed {
		return nil, apperrors.OutsideOperatingHours(
			fmt.Sprintf("The ground is closed on %s", timeslot.DayNames[weekday]))
	}

	allowed, err := timeslot.Generate(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
	if err != nil {
		return nil, apperrors.Internal("Invalid operating hours configuration", err)
	}
	return allowed, nil
}

// publishEvent is fire-and-forget: a broker outage must never fail a
// committed booking.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, ground *model.Ground, bookings []*model.Booking) {
	if s.publisher == nil || len(bookings) == 0 {
		return
	}

	ids := make([]string, 0, len(bookings))
	slots := make([]string, 0, len(bookings))
	var total float64
	for _, b := range bookings {
		ids = append(ids, b.ID)
		slots = append(slots, b.Slot)
		total += b.PriceAtBooking
	}

	event := notifications.BookingEvent{
		EventType:     eventType,
		BookingIDs:    ids,
		GroundID:      ground.ID,
		GroundName:    ground.Name,
		Date:          bookings[0].Date,
		Slots:         slots,
		UserID:        bookings[0].UserID,
		CustomerName:  bookings[0].CustomerName,
		CustomerPhone: bookings[0].CustomerPhone,
		TotalPrice:    total,
		OccurredAt:    time.Now().UTC(),
	}

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"ground_id", ground.ID,
			"error", err,
		)
	}
}
