package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/detect"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/events"
	"github.com/spec-kit/aastha-chatbot/internal/persistence"
	"github.com/spec-kit/aastha-chatbot/internal/repository"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

const ticketStatusEndpoint = "/ticket/status/"

// DatabaseInspector reports connection details for the ticket database.
type DatabaseInspector interface {
	Connected() bool
	Info(ctx context.Context) persistence.DatabaseInfo
}

// TicketService coordinates direct ticket lookups, phone searches and registration.
type TicketService struct {
	tickets       repository.TicketRepository
	database      DatabaseInspector
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	lookupTimeout time.Duration
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	Database      DatabaseInspector
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	LookupTimeout time.Duration
}

// TicketLookupResult is a direct status lookup hit.
type TicketLookupResult struct {
	Message      string
	Ticket       *domain.TicketRecord
	CreatedDate  string
	Language     domain.Language
	SearchMethod detect.IdentifierKind
	SearchValue  string
}

// TicketSearchResult lists tickets registered against one phone number.
type TicketSearchResult struct {
	Tickets  []domain.TicketRecord
	Language domain.Language
}

// TicketCreateInput describes a grievance registration.
type TicketCreateInput struct {
	EmployeeID       string
	EmployeeName     string
	MobileNumber     string
	OfficialEmail    string
	Designation      string
	Department       string
	OfficeName       string
	DistrictName     *string
	UserRole         string
	Priority         string
	IssueCategory    string
	IssueSubCategory *string
	Module           *string
	Section          *string
	SubSection       *string
	Subject          string
	Description      string
}

// DatabaseStats is the ticket table summary together with connection details.
type DatabaseStats struct {
	Info     persistence.DatabaseInfo
	Tickets  domain.TicketStats
	Channel  domain.TicketStats
	Captured time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:       deps.TicketRepo,
		database:      deps.Database,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		lookupTimeout: deps.LookupTimeout,
	}
}

// LookupTicket resolves a ticket code or mobile number to its newest ticket.
func (s *TicketService) LookupTicket(ctx context.Context, identifier string, lang domain.Language) (*TicketLookupResult, error) {
	lang = languageOrDefault(lang)
	raw := strings.TrimSpace(identifier)
	if raw == "" {
		return nil, apperrors.NewValidationError(catalog.For(lang).EmptyTicketID, map[string]any{"field": "ticket_id"})
	}

	method, value := detect.KindTicketID, raw
	if detect.ValidateMobileNumber(raw) {
		method, value = detect.KindMobileNumber, detect.NormalizeMobileNumber(raw)
	}

	ctx, cancel := s.withLookupTimeout(ctx)
	defer cancel()

	ticket, err := s.tickets.LookupStatus(ctx, value)
	if err != nil {
		s.logger.Error("ticket status lookup failed", zap.String("search_method", string(method)), zap.Error(err))
		return nil, apperrors.NewServiceUnavailable(catalog.For(lang).StatusLookupFailed, err)
	}

	if ticket == nil {
		msg := catalog.For(lang).TicketNotFound
		if method == detect.KindMobileNumber {
			msg = catalog.MobileSearchNotFound(lang, raw)
		}
		s.logger.Warn("no ticket found", zap.String("search_method", string(method)), zap.String("search_value", raw))
		s.publishLookup(ctx, raw, msg, lang)
		return nil, apperrors.NewNotFound(msg, map[string]any{
			"found":         false,
			"search_method": string(method),
			"search_value":  raw,
		})
	}

	msg := catalog.TicketStatus(ticket, lang)
	s.publishLookup(ctx, raw, msg, lang)
	return &TicketLookupResult{
		Message:      msg,
		Ticket:       ticket,
		CreatedDate:  catalog.FormatDate(ticket.CreatedAt),
		Language:     lang,
		SearchMethod: method,
		SearchValue:  raw,
	}, nil
}

// SearchByPhone lists up to 50 tickets for a mobile number, newest first.
func (s *TicketService) SearchByPhone(ctx context.Context, userIdentifier string, lang domain.Language) (*TicketSearchResult, error) {
	lang = languageOrDefault(lang)
	phone := strings.TrimSpace(userIdentifier)
	if phone == "" {
		return nil, apperrors.NewValidationError(catalog.For(lang).EmptyUserIdentifier, map[string]any{"field": "user_identifier"})
	}
	if detect.ValidateMobileNumber(phone) {
		phone = detect.NormalizeMobileNumber(phone)
	}

	ctx, cancel := s.withLookupTimeout(ctx)
	defer cancel()

	tickets, err := s.tickets.ListByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("search tickets by phone failed", zap.Error(err))
		return nil, apperrors.NewServiceUnavailable(catalog.For(lang).StatusLookupFailed, err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.NewNotFound(catalog.For(lang).UserSearchEmpty, map[string]any{"found": false})
	}
	return &TicketSearchResult{Tickets: tickets, Language: lang}, nil
}

// RegisterTicket stores a new grievance and returns it with its generated code.
func (s *TicketService) RegisterTicket(ctx context.Context, input TicketCreateInput) (*domain.TicketRecord, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, apperrors.NewValidationError("subject is required", map[string]any{"field": "subject"})
	}
	if strings.TrimSpace(input.IssueCategory) == "" {
		return nil, apperrors.NewValidationError("issue category is required", map[string]any{"field": "issue_category"})
	}
	mobile := strings.TrimSpace(input.MobileNumber)
	if mobile != "" {
		if !detect.ValidateMobileNumber(mobile) {
			return nil, apperrors.NewValidationError(catalog.For(domain.LanguageEnglish).InvalidIdentifier, map[string]any{"field": "mobile_number"})
		}
		mobile = detect.NormalizeMobileNumber(mobile)
	}

	now := time.Now()
	ticket := &domain.TicketRecord{
		EmployeeID:       strings.TrimSpace(input.EmployeeID),
		EmployeeName:     strings.TrimSpace(input.EmployeeName),
		MobileNumber:     mobile,
		OfficialEmail:    strings.TrimSpace(input.OfficialEmail),
		Designation:      input.Designation,
		Department:       input.Department,
		OfficeName:       input.OfficeName,
		DistrictName:     input.DistrictName,
		UserRole:         input.UserRole,
		Priority:         domain.TicketPriority(strings.TrimSpace(input.Priority)),
		IssueTimestamp:   &now,
		IssueCategory:    strings.TrimSpace(input.IssueCategory),
		IssueSubCategory: input.IssueSubCategory,
		Module:           input.Module,
		Section:          input.Section,
		SubSection:       input.SubSection,
		Subject:          strings.TrimSpace(input.Subject),
		Description:      strings.TrimSpace(input.Description),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrDatabaseUnavailable) {
			return nil, apperrors.NewServiceUnavailable("database not connected", err)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventTicketRegistered, "", events.TicketRegisteredPayload{
		TicketCode:    ticket.Code,
		Priority:      ticket.Priority,
		IssueCategory: ticket.IssueCategory,
	}))
	return ticket, nil
}

// DatabaseConnected reports whether a ticket database is configured and reachable.
func (s *TicketService) DatabaseConnected() bool {
	return s.database != nil && s.database.Connected()
}

// DatabaseInfo returns connection details, or a disconnected marker.
func (s *TicketService) DatabaseInfo(ctx context.Context) persistence.DatabaseInfo {
	if !s.DatabaseConnected() {
		return persistence.DatabaseInfo{Connected: false}
	}
	return s.database.Info(ctx)
}

// DatabaseStats aggregates ticket counts overall and for chatbot-registered tickets.
func (s *TicketService) DatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	if !s.DatabaseConnected() {
		return nil, apperrors.NewServiceUnavailable("Database not connected", repository.ErrDatabaseUnavailable)
	}
	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable("Failed to get database statistics", err)
	}
	channel, err := s.tickets.ChannelStats(ctx)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable("Failed to get database statistics", err)
	}
	return &DatabaseStats{
		Info:     s.database.Info(ctx),
		Tickets:  stats,
		Channel:  channel,
		Captured: time.Now(),
	}, nil
}

func (s *TicketService) withLookupTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.lookupTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.lookupTimeout)
}

func (s *TicketService) publishLookup(ctx context.Context, identifier, reply string, lang domain.Language) {
	s.publish(ctx, events.New(events.EventChatExchanged, "", events.ChatExchangedPayload{
		Endpoint:  ticketStatusEndpoint,
		UserInput: "ticket_status_lookup:" + identifier,
		Reply:     reply,
		Language:  lang,
	}))
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func languageOrDefault(lang domain.Language) domain.Language {
	if l, ok := domain.ParseLanguage(string(lang)); ok {
		return l
	}
	return domain.LanguageEnglish
}
