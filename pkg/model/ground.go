package model

import "time"

type Ground struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	City         string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	Location     string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	PricePerHour float64   `json:"price_per_hour" bson:"price_per_hour" validate:"required,gt=0"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty" validate:"omitempty,url"`
	SurfaceType  string    `json:"surface_type,omitempty" bson:"surface_type,omitempty" validate:"omitempty,max=50"`
	Capacity     int       `json:"capacity,omitempty" bson:"capacity,omitempty" validate:"omitempty,min=1,max=100000"`
	Dimensions   string    `json:"dimensions,omitempty" bson:"dimensions,omitempty" validate:"omitempty,max=50"`
	Category     string    `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=50"`
	CreatedAt    time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

type GroundUpdate struct {
	Name         string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	City         string   `json:"city,omitempty" validate:"omitempty,min=2,max=50"`
	Location     string   `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	PricePerHour *float64 `json:"price_per_hour,omitempty" validate:"omitempty,gt=0"`
	Description  string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL     string   `json:"image_url,omitempty" validate:"omitempty,url"`
	SurfaceType  string   `json:"surface_type,omitempty" validate:"omitempty,max=50"`
	Capacity     *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=100000"`
	Dimensions   string   `json:"dimensions,omitempty" validate:"omitempty,max=50"`
	Category     string   `json:"category,omitempty" validate:"omitempty,max=50"`
}
