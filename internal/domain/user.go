package domain

import "time"

// Default preference values applied at signup.
const (
	DefaultLanguage = "russian"
)

type User struct {
	UserID    string `json:"id" dynamodbav:"user_id"`
	FirstName string `json:"first_name" dynamodbav:"first_name"`
	LastName  string `json:"last_name" dynamodbav:"last_name"`
	// Contacts are optional but GSI hash keys; omitempty keeps absent ones
	// out of the item so the sparse phone-index/email-index accept it.
	Phone                *string   `json:"phone" dynamodbav:"phone,omitempty"`
	Email                *string   `json:"email" dynamodbav:"email,omitempty"`
	PasswordHash         string    `json:"-" dynamodbav:"password_hash"`
	Language             string    `json:"language" dynamodbav:"language"` // "uzbek" | "russian"
	NotificationsEnabled bool      `json:"notifications_enabled" dynamodbav:"notifications_enabled"`
	CreatedAt            time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt            time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpdatePreferencesRequest struct {
	Phone                string `json:"phone" validate:"required,uzphone"`
	Language             string `json:"language" validate:"required,oneof=uzbek russian"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}
