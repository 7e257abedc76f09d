package models

import (
	"database/sql"
	"time"
)

// User represents a Sleeper user
type User struct {
	ID          string         `db:"id"` // Sleeper user ID
	Username    string         `db:"username"`
	DisplayName sql.NullString `db:"display_name"`
	Avatar      sql.NullString `db:"avatar"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// UserInput is the Sleeper user payload. Only the listed keys are mapped;
// anything else in the payload is ignored.
type UserInput struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// ToUser converts UserInput (from API) to User model
func (ui *UserInput) ToUser() *User {
	user := &User{
		ID:       ui.UserID,
		Username: ui.Username,
	}

	if ui.DisplayName != "" {
		user.DisplayName = sql.NullString{String: ui.DisplayName, Valid: true}
	}
	if ui.Avatar != "" {
		user.Avatar = sql.NullString{String: ui.Avatar, Valid: true}
	}

	return user
}

// Valid reports whether the payload carries the keys required to store it.
func (ui *UserInput) Valid() bool {
	return ui.UserID != "" && ui.Username != ""
}
