package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone" db:"phone"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserPreferences is a single upserted row per user.
type UserPreferences struct {
	UserID         string    `json:"user_id" db:"user_id"`
	FoodPreference string    `json:"food_preference" db:"food_preference"`
	MinRating      float64   `json:"min_rating" db:"min_rating"`
	SilentMode     bool      `json:"silent_mode" db:"silent_mode"`
	UpdatedAt      time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// UpdateProfileRequest defines the fields a user may change on their profile.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone,omitempty"`
}

type UpdatePreferencesRequest struct {
	FoodPreference *string  `json:"food_preference,omitempty" validate:"omitempty,max=100"`
	MinRating      *float64 `json:"min_rating,omitempty" validate:"omitempty,min=0,max=5"`
	SilentMode     *bool    `json:"silent_mode,omitempty"`
}
