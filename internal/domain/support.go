package domain

import "time"

// SupportMessage is a message a registered user submitted to the support team.
type SupportMessage struct {
	MessageID string    `json:"id" dynamodbav:"message_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type SupportMessageRequest struct {
	Phone   string `json:"phone" validate:"required,uzphone"`
	Message string `json:"message" validate:"required"`
}
