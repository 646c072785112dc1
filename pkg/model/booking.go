package model

import "time"

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking is one confirmed or cancelled reservation of a single slot.
// For a fixed (ground, date, slot) at most one row may hold
// StatusConfirmed; a partial unique index on the bookings collection is
// the enforcement point. PriceAtBooking is captured at creation and never
// recomputed.
type Booking struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	GroundID       string    `json:"ground_id" bson:"ground_id" validate:"required,mongodb"`
	Date           string    `json:"date" bson:"date" validate:"required,civil_date"`
	Slot           string    `json:"slot" bson:"slot" validate:"required,slot_time"`
	CustomerName   string    `json:"customer_name" bson:"customer_name" validate:"required,min=1,max=100"`
	CustomerPhone  string    `json:"customer_phone" bson:"customer_phone" validate:"required,min=4,max=20"`
	UserID         string    `json:"user_id" bson:"user_id" validate:"required,max=128"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=CONFIRMED CANCELLED"`
	PriceAtBooking float64   `json:"price_at_booking" bson:"price_at_booking" validate:"required,gt=0"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the caller-supplied shape of a booking attempt. The
// customer identity and price are resolved server-side.
type BookingRequest struct {
	GroundID string   `json:"ground_id" validate:"required,mongodb"`
	Date     string   `json:"date" validate:"required,civil_date"`
	Slots    []string `json:"slots" validate:"required,min=1,max=24,dive,slot_time"`
}
