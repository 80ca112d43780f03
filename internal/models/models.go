package models

import "time"

// Role is the authorisation role attached to a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the full write model persisted in the users table.
// Password and RefreshToken are internal and never serialised to clients.
type User struct {
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	Password     string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"-"`
	Language     Language  `json:"language"`
	Introduction string    `json:"introduction,omitempty"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdTimestamp"`
	UpdatedAt    time.Time `json:"updatedTimestamp"`
}
