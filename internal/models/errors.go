package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found,
	// or exists but is not owned by the requesting user.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned on uniqueness violations, e.g. registering
	// with an email or phone number that is already taken.
	ErrConflict = errors.New("resource already exists")

	// ErrValidation is returned when input fails a business rule that the
	// struct validator cannot express (e.g. the phone digit count).
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned on login failure. Callers must not
	// distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrStationUnavailable is returned when a booking is attempted on a
	// station that is occupied, under maintenance, or inactive.
	ErrStationUnavailable = errors.New("station is not available for booking")

	// ErrStationHasActiveBookings is returned when an admin tries to delete
	// a station that still has active bookings against it.
	ErrStationHasActiveBookings = errors.New("station has active bookings")
)

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Message string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}
