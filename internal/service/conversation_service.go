package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/detect"
	"github.com/spec-kit/aastha-chatbot/internal/dialogue"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/events"
	"github.com/spec-kit/aastha-chatbot/internal/observability"
	"github.com/spec-kit/aastha-chatbot/internal/session"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

const queryEndpoint = "/query/"

// ConversationService runs chat messages through the greeting check and the dialogue
// engine, one message at a time per session.
type ConversationService struct {
	sessions       session.Store
	history        *session.History
	locks          *session.Locker
	engine         *dialogue.Engine
	dispatcher     events.Dispatcher
	metrics        *observability.Metrics
	logger         *zap.Logger
	maxInputLength int
}

// ConversationDependencies bundles collaborators for the conversation service.
type ConversationDependencies struct {
	Sessions       session.Store
	History        *session.History
	Tickets        dialogue.TicketStore
	LookupTimeout  time.Duration
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	MaxInputLength int
}

// QueryInput is a validated-at-the-boundary chat message.
type QueryInput struct {
	Text      string
	SessionID string
	Language  string
}

// QueryResult is the reply to one chat message.
type QueryResult struct {
	Reply     string
	Language  domain.Language
	SessionID string
}

// NewConversationService wires the engine against deps.Tickets. Lookups are bounded by
// deps.LookupTimeout when set.
func NewConversationService(deps ConversationDependencies) *ConversationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := deps.Tickets
	if deps.LookupTimeout > 0 {
		store = timeoutTicketStore{next: store, timeout: deps.LookupTimeout}
	}
	maxLen := deps.MaxInputLength
	if maxLen <= 0 {
		maxLen = 500
	}
	return &ConversationService{
		sessions:       deps.Sessions,
		history:        deps.History,
		locks:          session.NewLocker(),
		engine:         dialogue.NewEngine(store, logger),
		dispatcher:     deps.Dispatcher,
		metrics:        deps.Metrics,
		logger:         logger,
		maxInputLength: maxLen,
	}
}

// HandleQuery validates the message, answers greetings directly and otherwise runs the
// dialogue engine against the caller's session, creating it on first use.
func (s *ConversationService) HandleQuery(ctx context.Context, in QueryInput) (*QueryResult, error) {
	s.metrics.QueryReceived()

	lang, text, err := s.validateQuery(in)
	if err != nil {
		s.metrics.QueryFailed(err.Error())
		return nil, err
	}

	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = session.NewID()
	}

	if g, ok := detect.DetectGreeting(text); ok {
		reply := catalog.GreetingReply(lang, g)
		s.metrics.QuerySucceeded()
		s.publishChat(ctx, sessionID, text, reply, lang)
		return &QueryResult{Reply: reply, Language: lang, SessionID: sessionID}, nil
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, found, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, s.queryFailed(lang, err)
	}
	if !found {
		sess = domain.NewSession(sessionID, lang)
	}
	sess.Language = lang

	before := sess.Stage
	res := s.engine.Handle(ctx, text, sess, lang)
	sess.UpdatedAt = time.Now()

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, s.queryFailed(lang, err)
	}

	if res.LookupErr != nil {
		s.metrics.QueryFailed(res.LookupErr.Error())
	} else {
		s.metrics.QuerySucceeded()
	}
	if sess.Stage != before {
		s.publish(ctx, events.New(events.EventStageChanged, sessionID, events.StageChangedPayload{
			From: before,
			To:   sess.Stage,
			Rule: res.Rule,
		}))
	}
	s.publishChat(ctx, sessionID, text, res.Reply, lang)

	return &QueryResult{Reply: res.Reply, Language: lang, SessionID: sessionID}, nil
}

func (s *ConversationService) validateQuery(in QueryInput) (domain.Language, string, error) {
	raw := strings.ToLower(strings.TrimSpace(in.Language))
	if raw == "" {
		raw = string(domain.LanguageEnglish)
	}
	lang, ok := domain.ParseLanguage(raw)
	if !ok {
		return "", "", apperrors.NewValidationError(catalog.UnsupportedLanguage(raw), map[string]any{"field": "language"})
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", "", apperrors.NewValidationError(catalog.For(lang).EmptyQuery, map[string]any{"field": "input_text"})
	}
	if utf8.RuneCountInString(text) > s.maxInputLength {
		return "", "", apperrors.NewValidationError(catalog.InputTooLong(lang, s.maxInputLength), map[string]any{"field": "input_text"})
	}
	return lang, text, nil
}

func (s *ConversationService) queryFailed(lang domain.Language, err error) error {
	s.metrics.QueryFailed(err.Error())
	s.logger.Error("query processing failed", zap.Error(err))
	return apperrors.NewServiceUnavailable(catalog.For(lang).QueryFailed, err)
}

// SessionCount reports live sessions.
func (s *ConversationService) SessionCount(ctx context.Context) (int, error) {
	return s.sessions.Count(ctx)
}

// Sessions returns the current stage of every live session.
func (s *ConversationService) Sessions(ctx context.Context) (map[string]domain.Stage, error) {
	snap, err := s.sessions.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable("session store unavailable", err)
	}
	return snap, nil
}

// History returns the recorded turns for a session, newest first.
func (s *ConversationService) History(sessionID string) []domain.ChatTurn {
	return s.history.Get(sessionID)
}

func (s *ConversationService) publishChat(ctx context.Context, sessionID, input, reply string, lang domain.Language) {
	s.publish(ctx, events.New(events.EventChatExchanged, sessionID, events.ChatExchangedPayload{
		Endpoint:  queryEndpoint,
		UserInput: input,
		Reply:     reply,
		Language:  lang,
		Recorded:  true,
	}))
}

func (s *ConversationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

type timeoutTicketStore struct {
	next    dialogue.TicketStore
	timeout time.Duration
}

func (t timeoutTicketStore) LookupStatus(ctx context.Context, identifier string) (*domain.TicketRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.LookupStatus(ctx, identifier)
}
