package model

import "time"

// UserProfile is keyed by the identity provider's opaque user id. Both
// name and phone must be non-empty before the booking workflow accepts a
// reservation for that user.
type UserProfile struct {
	UserID    string    `json:"user_id,omitempty" bson:"_id" validate:"required,max=128"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,min=4,max=20"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

func (p *UserProfile) Complete() bool {
	return p != nil && p.Name != "" && p.Phone != ""
}
