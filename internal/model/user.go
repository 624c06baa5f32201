package model

import "time"

// UserRole distinguishes staff from customers.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// UserProfile holds the contact details used for delivery.
type UserProfile struct {
	UserID      string    `json:"userId" db:"user_id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName" db:"display_name"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	Address     string    `json:"address" db:"address"`
	Role        UserRole  `json:"role" db:"role"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateProfileRequest is the payload for editing the current user's profile.
type UpdateProfileRequest struct {
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	DisplayName string `json:"displayName" validate:"max=128"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
	Address     string `json:"address" validate:"max=512"`
}
