package model

import "time"

// OperatingHoursRule configures one weekday for one ground. Weekdays use
// the Monday=0..Sunday=6 storage convention; see timeslot.StorageWeekday.
// At most one rule exists per (ground, weekday), enforced by a unique index.
type OperatingHoursRule struct {
	ID                  string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	GroundID            string    `json:"ground_id" bson:"ground_id" validate:"required,mongodb"`
	DayOfWeek           int       `json:"day_of_week" bson:"day_of_week" validate:"min=0,max=6"`
	IsClosed            bool      `json:"is_closed" bson:"is_closed"`
	StartTime           string    `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"required_if=IsClosed false,omitempty,slot_time"`
	EndTime             string    `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"required_if=IsClosed false,omitempty,slot_time"`
	SlotDurationMinutes int       `json:"slot_duration_minutes" bson:"slot_duration_minutes" validate:"omitempty,min=15,max=480"`
	UpdatedAt           time.Time `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`

	// DayName is derived for responses, never persisted.
	DayName string `json:"day_name,omitempty" bson:"-"`
}
