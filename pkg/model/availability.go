package model

// AvailabilitySlot is derived per query and never persisted: a booking
// made moments earlier must immediately affect the next resolution.
type AvailabilitySlot struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type Availability struct {
	GroundID string             `json:"ground_id"`
	Date     string             `json:"date"`
	Slots    []AvailabilitySlot `json:"slots"`
}
