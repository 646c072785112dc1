package service

import (
	"context"
	"errors"

	bookingsrepo "groundbook/internal/bookings/repository"
	groundserrors "groundbook/internal/grounds/errors"
	groundsrepo "groundbook/internal/grounds/repository"
	hourserrors "groundbook/internal/operatinghours/errors"
	hoursrepo "groundbook/internal/operatinghours/repository"
	"groundbook/pkg/clock"
	"groundbook/pkg/config"
	apperrors "groundbook/pkg/errors"
	"groundbook/pkg/model"
	"groundbook/pkg/timeslot"
)

type AvailabilityService interface {
	Resolve(ctx context.Context, groundID, date string) (*model.Availability, error)
}

type availabilityService struct {
	groundsRepo  groundsrepo.GroundRepository
	hoursRepo    hoursrepo.OperatingHoursRepository
	bookingsRepo bookingsrepo.BookingRepository
	clock        clock.Clock
	cfg          *config.Config
}

func NewAvailabilityService(
	groundsRepo groundsrepo.GroundRepository,
	hoursRepo hoursrepo.OperatingHoursRepository,
	bookingsRepo bookingsrepo.BookingRepository,
	clk clock.Clock,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		groundsRepo:  groundsRepo,
		hoursRepo:    hoursRepo,
		bookingsRepo: bookingsRepo,
		clock:        clk,
		cfg:          cfg,
	}
}

// Resolve computes the slot grid for a ground on a date. Derived fresh on
// every call: generated slots minus CONFIRMED bookings, minus slots whose
// start time has already passed when the date is today. A closed or
// unconfigured weekday resolves to an empty grid rather than an error.
func (s *availabilityService) Resolve(ctx context.Context, groundID, date string) (*model.Availability, error) {
	if !timeslot.IsValidDate(date) {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}
	if date < s.clock.Today() {
		return nil, apperrors.PastSlot("Cannot resolve availability for a past date")
	}

	if _, err := s.groundsRepo.FindByID(ctx, groundID); err != nil {
		if errors.Is(err, groundserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Ground", groundID)
		}
		if errors.Is(err, groundserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid ground ID format")
		}
		return nil, apperrors.Internal("Failed to load ground", err)
	}

	availability := &model.Availability{
		GroundID: groundID,
		Date:     date,
		Slots:    []model.AvailabilitySlot{},
	}

	weekday, err := timeslot.WeekdayOf(date)
	if err != nil {
		return nil, err
	}

	rule, err := s.hoursRepo.FindRule(ctx, groundID, weekday)
	if err != nil {
		if errors.Is(err, hourserrors.ErrNotFound) {
			return availability, nil
		}
		return nil, apperrors.Internal("Failed to load operating hours", err)
	}
	if rule.IsClosed {
		return availability, nil
	}

	slots, err := timeslot.Generate(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
	if err != nil {
		return nil, apperrors.Internal("Invalid operating hours configuration", err)
	}

	booked, err := s.bookingsRepo.FindConfirmedSlots(ctx, groundID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load confirmed slots", "ground_id", groundID, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	bookedSet := make(map[string]bool, len(booked))
	for _, slot := range booked {
		bookedSet[slot] = true
	}

	isToday := date == s.clock.Today()
	nowMin := s.clock.MinuteOfDay()

	for _, slot := range slots {
		available := !bookedSet[slot]
		if available && isToday {
			slotMin, err := timeslot.ParseHHMM(slot)
			if err != nil {
				return nil, apperrors.Internal("Invalid slot produced by generator", err)
			}
			if slotMin <= nowMin {
				available = false
			}
		}
		availability.Slots = append(availability.Slots, model.AvailabilitySlot{
			Slot:      slot,
			Available: available,
		})
	}

	return availability, nil
}
