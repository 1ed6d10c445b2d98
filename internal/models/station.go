package models

import "time"

// Station statuses. Inactive stations are hidden from listings and search.
const (
	StationStatusAvailable   = "available"
	StationStatusOccupied    = "occupied"
	StationStatusMaintenance = "maintenance"
	StationStatusInactive    = "inactive"
)

// ExternalStationIDPrefix tags ids synthesized for provider-sourced stations
// so they can never collide with persisted UUIDs.
const ExternalStationIDPrefix = "ext-"

// Station is a charging point, either persisted or discovered through the
// external places provider. External stations are never written to the
// database; they carry IsExternal=true and an "ext-" prefixed id.
type Station struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Address       string    `json:"address" db:"address"`
	Latitude      float64   `json:"latitude" db:"latitude"`
	Longitude     float64   `json:"longitude" db:"longitude"`
	Status        string    `json:"status" db:"status"`
	ConnectorType string    `json:"connector_type" db:"connector_type"`
	PowerOutputKW float64   `json:"power_output_kw" db:"power_output_kw"`
	PricePerKWh   float64   `json:"price_per_kwh" db:"price_per_kwh"`
	Rating        *float64  `json:"rating,omitempty" db:"rating"`
	ReviewCount   *int      `json:"review_count,omitempty" db:"review_count"`
	DistanceKM    *float64  `json:"distance_km,omitempty" db:"-"`
	IsExternal    bool      `json:"is_external" db:"-"`
	CreatedAt     time.Time `json:"created_at,omitzero" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

// IsFastCharger reports whether the station meets the 30 kW fast-charge bar.
func (s *Station) IsFastCharger() bool {
	return s.PowerOutputKW >= 30
}

type StationSearchRequest struct {
	Latitude  float64 `query:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `query:"longitude" validate:"min=-180,max=180"`
	Radius    float64 `query:"radius" validate:"omitempty,gt=0,max=500"`
}

// CreateStationRequest is the admin payload for adding a station.
type CreateStationRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Address       string  `json:"address" validate:"required"`
	Latitude      float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude     float64 `json:"longitude" validate:"min=-180,max=180"`
	Status        string  `json:"status" validate:"omitempty,oneof=available occupied maintenance inactive"`
	ConnectorType string  `json:"connector_type" validate:"required"`
	PowerOutputKW float64 `json:"power_output_kw" validate:"gt=0"`
	PricePerKWh   float64 `json:"price_per_kwh" validate:"gte=0"`
}

// UpdateStationRequest is the admin payload for editing a station. Only the
// provided fields are written.
type UpdateStationRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Address       *string  `json:"address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance inactive"`
	ConnectorType *string  `json:"connector_type,omitempty"`
	PowerOutputKW *float64 `json:"power_output_kw,omitempty" validate:"omitempty,gt=0"`
	PricePerKWh   *float64 `json:"price_per_kwh,omitempty" validate:"omitempty,gte=0"`
}
