package notifications

import "time"

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published to the booking events topic after
// a booking transaction commits. Consumers deliver customer notifications
// from it; delivery is best-effort and never blocks the booking path.
type BookingEvent struct {
	EventType     string    `json:"event_type"`
	BookingIDs    []string  `json:"booking_ids"`
	GroundID      string    `json:"ground_id"`
	GroundName    string    `json:"ground_name,omitempty"`
	Date          string    `json:"date"`
	Slots         []string  `json:"slots"`
	UserID        string    `json:"user_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	TotalPrice    float64   `json:"total_price,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
