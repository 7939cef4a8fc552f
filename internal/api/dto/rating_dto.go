package dto

// RatingRequest payload.
type RatingRequest struct {
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	SessionID    string `json:"session_id,omitempty" validate:"omitempty,max=128"`
	Language     string `json:"language" validate:"omitempty,oneof=en mr"`
	TicketID     string `json:"ticket_id,omitempty" validate:"omitempty,max=64"`
	FeedbackText string `json:"feedback_text,omitempty" validate:"omitempty,max=1000"`
}

// RatingResponse acknowledges a stored rating.
type RatingResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ThankYou    string `json:"thank_you"`
	Rating      int    `json:"rating"`
	RatingLabel string `json:"rating_label"`
	SessionID   string `json:"session_id"`
}
