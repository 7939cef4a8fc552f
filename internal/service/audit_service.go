package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/events"
	"github.com/spec-kit/aastha-chatbot/internal/observability"
	"github.com/spec-kit/aastha-chatbot/internal/session"
)

// AuditService records chat history and writes the audit log lines for chatbot events.
type AuditService struct {
	dispatcher events.Dispatcher
	history    *session.History
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, history *session.History, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		history:    history,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventChatExchanged, a.handleChatExchanged)
	a.dispatcher.Subscribe(events.EventStageChanged, a.handleStageChanged)
	a.dispatcher.Subscribe(events.EventRatingSubmitted, a.handleRatingSubmitted)
	a.dispatcher.Subscribe(events.EventTicketRegistered, a.handleTicketRegistered)
}

func (a *AuditService) handleChatExchanged(_ context.Context, event events.Event) error {
	p, ok := event.Payload.(events.ChatExchangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	observability.LogChat(a.logger, p.Endpoint, event.SessionID, string(p.Language), p.UserInput, p.Reply)
	if p.Recorded && event.SessionID != "" {
		a.history.Add(domain.ChatTurn{
			SessionID: event.SessionID,
			User:      p.UserInput,
			Assistant: p.Reply,
			Language:  p.Language,
			CreatedAt: event.Timestamp,
		})
	}
	return nil
}

func (a *AuditService) handleStageChanged(_ context.Context, event events.Event) error {
	p, ok := event.Payload.(events.StageChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	a.logger.Info("StageChanged",
		zap.String("session_id", event.SessionID),
		zap.String("from", string(p.From)),
		zap.String("to", string(p.To)),
		zap.String("rule", p.Rule),
	)
	return nil
}

func (a *AuditService) handleRatingSubmitted(_ context.Context, event events.Event) error {
	p, ok := event.Payload.(events.RatingSubmittedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	input := fmt.Sprintf("Rating: %d/5", p.Entry.Rating)
	a.history.Add(domain.ChatTurn{
		SessionID: event.SessionID,
		User:      input,
		Assistant: p.Reply,
		Language:  p.Entry.Language,
		CreatedAt: event.Timestamp,
	})
	observability.LogChat(a.logger, "/rating/", event.SessionID, string(p.Entry.Language), fmt.Sprintf("rating:%d", p.Entry.Rating), p.Reply)
	a.logger.Info("RatingSubmitted",
		zap.String("session_id", event.SessionID),
		zap.Int("rating", p.Entry.Rating),
		zap.String("label", p.Entry.Label),
	)
	return nil
}

func (a *AuditService) handleTicketRegistered(_ context.Context, event events.Event) error {
	p, ok := event.Payload.(events.TicketRegisteredPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	a.logger.Info("TicketRegistered",
		zap.String("ticket", p.TicketCode),
		zap.String("priority", string(p.Priority)),
		zap.String("category", p.IssueCategory),
	)
	return nil
}
