package models

import "time"

const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking reserves a station for a user. An active booking implies the
// station is marked occupied; cancelling frees the station.
type Booking struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	StationID   string     `json:"station_id" db:"station_id"`
	StartTime   time.Time  `json:"start_time" db:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty" db:"end_time"`
	Status      string     `json:"status" db:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Display fields joined from the stations table for listings.
	StationName    string `json:"station_name,omitempty" db:"-"`
	StationAddress string `json:"station_address,omitempty" db:"-"`
}

type CreateBookingRequest struct {
	StationID       string `json:"station_id" validate:"required,uuid4"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
}
