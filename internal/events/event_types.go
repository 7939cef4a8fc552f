package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventChatExchanged    EventType = "chat_exchanged"
	EventStageChanged     EventType = "stage_changed"
	EventRatingSubmitted  EventType = "rating_submitted"
	EventTicketRegistered EventType = "ticket_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, sessionID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// ChatExchangedPayload payload.
type ChatExchangedPayload struct {
	Endpoint  string          `json:"endpoint"`
	UserInput string          `json:"user_input"`
	Reply     string          `json:"reply"`
	Language  domain.Language `json:"language"`
	// Recorded is false for exchanges that are logged but kept out of chat history.
	Recorded bool `json:"recorded"`
}

// StageChangedPayload payload.
type StageChangedPayload struct {
	From domain.Stage `json:"from"`
	To   domain.Stage `json:"to"`
	Rule string       `json:"rule"`
}

// RatingSubmittedPayload payload.
type RatingSubmittedPayload struct {
	Entry domain.RatingEntry `json:"entry"`
	Reply string             `json:"reply"`
}

// TicketRegisteredPayload payload.
type TicketRegisteredPayload struct {
	TicketCode    string                `json:"ticket_code"`
	Priority      domain.TicketPriority `json:"priority"`
	IssueCategory string                `json:"issue_category"`
}
