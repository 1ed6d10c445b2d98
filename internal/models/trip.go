package models

import "time"

const (
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

const (
	WaypointTypeSuggestedStop = "suggested_stop"
	WaypointTypeActualStop    = "actual_stop"
)

// Trip tracks an in-progress journey and its battery state.
type Trip struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	VehicleID         *string   `json:"vehicle_id,omitempty" db:"vehicle_id"`
	StartLatitude     float64   `json:"start_latitude" db:"start_latitude"`
	StartLongitude    float64   `json:"start_longitude" db:"start_longitude"`
	DestLatitude      float64   `json:"dest_latitude" db:"dest_latitude"`
	DestLongitude     float64   `json:"dest_longitude" db:"dest_longitude"`
	BatteryStartPct   float64   `json:"battery_start_pct" db:"battery_start_pct"`
	BatteryCurrentPct float64   `json:"battery_current_pct" db:"battery_current_pct"`
	Status            string    `json:"status" db:"status"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// TripWaypoint records a suggested or actual charging stop on a trip.
// StationID is nil when the suggested station was externally discovered,
// since external stations are never persisted.
type TripWaypoint struct {
	ID                    string    `json:"id" db:"id"`
	TripID                string    `json:"trip_id" db:"trip_id"`
	StationID             *string   `json:"station_id,omitempty" db:"station_id"`
	WaypointType          string    `json:"waypoint_type" db:"waypoint_type"`
	Message               string    `json:"message" db:"message"`
	ChargeDurationMinutes int       `json:"charge_duration_minutes" db:"charge_duration_minutes"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}

// StopSuggestion is the evaluator's verdict: a meal-window charging stop.
type StopSuggestion struct {
	MealType              string  `json:"meal_type"`
	Station               Station `json:"station"`
	Message               string  `json:"message"`
	ChargeDurationMinutes int     `json:"charge_duration_minutes"`
}

type PlanTripRequest struct {
	VehicleID       *string `json:"vehicle_id,omitempty"`
	StartLatitude   float64 `json:"start_latitude" validate:"min=-90,max=90"`
	StartLongitude  float64 `json:"start_longitude" validate:"min=-180,max=180"`
	DestLatitude    float64 `json:"dest_latitude" validate:"min=-90,max=90"`
	DestLongitude   float64 `json:"dest_longitude" validate:"min=-180,max=180"`
	BatteryStartPct float64 `json:"battery_start_pct" validate:"min=0,max=100"`
}

type UpdateTripRequest struct {
	Latitude          float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude         float64 `json:"longitude" validate:"min=-180,max=180"`
	BatteryPercentage float64 `json:"battery_percentage" validate:"min=0,max=100"`
}

// UpdateTripResponse returns the refreshed trip plus an optional stop
// suggestion produced by this update.
type UpdateTripResponse struct {
	Trip       *Trip           `json:"trip"`
	Suggestion *StopSuggestion `json:"suggestion,omitempty"`
}
