package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/events"
	"github.com/spec-kit/aastha-chatbot/internal/observability"
	"github.com/spec-kit/aastha-chatbot/internal/persistence"
	"github.com/spec-kit/aastha-chatbot/internal/repository"
	"github.com/spec-kit/aastha-chatbot/internal/session"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

type fakeTicketRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.TicketRecord
	byPhone     map[string][]domain.TicketRecord
	created     []*domain.TicketRecord
	err         error
	sawDeadline bool
}

func (f *fakeTicketRepo) LookupStatus(ctx context.Context, identifier string) (*domain.TicketRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, f.sawDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[identifier], nil
}

func (f *fakeTicketRepo) ListByPhone(_ context.Context, mobile string) ([]domain.TicketRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPhone[mobile], nil
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.TicketRecord) error {
	if f.err != nil {
		return f.err
	}
	ticket.Code = "TKT-0a1b2c3d"
	ticket.Status = domain.TicketStatusOpen
	ticket.Priority = domain.ParsePriority(string(ticket.Priority), domain.TicketPriorityMedium)
	f.created = append(f.created, ticket)
	return nil
}

func (f *fakeTicketRepo) Stats(context.Context) (domain.TicketStats, error) {
	return domain.TicketStats{Total: 3, Open: 2, Resolved: 1}, f.err
}

func (f *fakeTicketRepo) ChannelStats(context.Context) (domain.TicketStats, error) {
	return domain.TicketStats{Total: 1, Open: 1}, f.err
}

type fakeDatabase struct{ connected bool }

func (f fakeDatabase) Connected() bool { return f.connected }

func (f fakeDatabase) Info(context.Context) persistence.DatabaseInfo {
	return persistence.DatabaseInfo{Connected: f.connected, DatabaseName: "grievance"}
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) ofType(t events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	tickets      *fakeTicketRepo
	sessions     *session.MemoryStore
	history      *session.History
	metrics      *observability.Metrics
	recorder     *recorder
	conversation *ConversationService
	ticketSvc    *TicketService
	ratingSvc    *RatingService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher(logger)
	history := session.NewHistory(50, time.Hour, time.Minute)
	NewAuditService(dispatcher, history, logger).RegisterHandlers()

	rec := &recorder{}
	for _, et := range []events.EventType{events.EventChatExchanged, events.EventStageChanged, events.EventRatingSubmitted, events.EventTicketRegistered} {
		dispatcher.Subscribe(et, rec.handle)
	}

	h := &harness{
		tickets:  &fakeTicketRepo{byID: map[string]*domain.TicketRecord{}, byPhone: map[string][]domain.TicketRecord{}},
		sessions: session.NewMemoryStore(time.Hour, time.Minute),
		history:  history,
		metrics:  observability.NewMetrics(),
		recorder: rec,
	}
	h.conversation = NewConversationService(ConversationDependencies{
		Sessions:       h.sessions,
		History:        history,
		Tickets:        h.tickets,
		LookupTimeout:  time.Second,
		Dispatcher:     dispatcher,
		Metrics:        h.metrics,
		Logger:         logger,
		MaxInputLength: 40,
	})
	h.ticketSvc = NewTicketService(TicketDependencies{
		TicketRepo:    h.tickets,
		Database:      fakeDatabase{connected: true},
		Dispatcher:    dispatcher,
		Logger:        logger,
		LookupTimeout: time.Second,
	})
	h.ratingSvc = NewRatingService(repository.NewRatingRepository(t.TempDir(), logger), dispatcher, logger)
	return h
}

func ticketFixture(code, mobile string) *domain.TicketRecord {
	created := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	return &domain.TicketRecord{
		Code:          code,
		MobileNumber:  mobile,
		Status:        domain.TicketStatusInProgress,
		EmployeeName:  "A. Deshmukh",
		IssueCategory: "Salary",
		CreatedAt:     &created,
	}
}

func requireDomainError(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, status, de.HTTPStatus)
	return de
}

func TestHandleQueryStatusFlow(t *testing.T) {
	h := newHarness(t)
	h.tickets.byID["TKT-ab12cd"] = ticketFixture("TKT-ab12cd", "9876543210")
	ctx := context.Background()

	first, err := h.conversation.HandleQuery(ctx, QueryInput{Text: "check status", Language: "EN"})
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, domain.LanguageEnglish, first.Language)
	assert.Equal(t, catalog.IdentifierPrompt(domain.LanguageEnglish), first.Reply)

	second, err := h.conversation.HandleQuery(ctx, QueryInput{Text: "TKT-ab12cd", SessionID: first.SessionID, Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, second.Reply, "TKT-ab12cd")
	assert.True(t, h.tickets.sawDeadline)

	stages, err := h.conversation.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusShown, stages[first.SessionID])

	changes := h.recorder.ofType(events.EventStageChanged)
	require.Len(t, changes, 2)
	assert.Equal(t, events.StageChangedPayload{From: domain.StageInitial, To: domain.StageWaitingForTicketID, Rule: "status_question"}, changes[0].Payload)

	turns := h.conversation.History(first.SessionID)
	require.Len(t, turns, 2)
	assert.Equal(t, "TKT-ab12cd", turns[0].User)
	assert.Equal(t, "check status", turns[1].User)

	assert.Equal(t, observability.QueryStats{Total: 2, Successful: 2}, h.metrics.Queries())
}

func TestHandleQueryGreetingSkipsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.conversation.HandleQuery(ctx, QueryInput{Text: "नमस्कार!", Language: "mr"})
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageMarathi, res.Language)
	assert.True(t, strings.HasPrefix(res.Reply, "नमस्कार"))

	count, err := h.conversation.SessionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, h.conversation.History(res.SessionID), 1)
}

func TestHandleQueryValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   QueryInput
		want string
	}{
		{"empty", QueryInput{Text: "   ", Language: "mr"}, catalog.For(domain.LanguageMarathi).EmptyQuery},
		{"unsupported language", QueryInput{Text: "hi", Language: "fr"}, "Language 'fr' not supported. Use: en, mr"},
		{"too long", QueryInput{Text: strings.Repeat("a", 41), Language: "en"}, "Input text too long (max 40 characters)."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.conversation.HandleQuery(ctx, tc.in)
			de := requireDomainError(t, err, http.StatusBadRequest)
			assert.Equal(t, tc.want, de.Message)
		})
	}
	assert.Equal(t, int64(3), h.metrics.Queries().Failed)
}

func TestHandleQueryStoreFailureRepliesWithApology(t *testing.T) {
	h := newHarness(t)
	h.tickets.err = errors.New("connection refused")

	res, err := h.conversation.HandleQuery(context.Background(), QueryInput{Text: "TKT-ab12cd", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, catalog.For(domain.LanguageEnglish).DatabaseError, res.Reply)

	stats := h.metrics.Queries()
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, "connection refused", stats.LastError)
}

func TestLookupTicket(t *testing.T) {
	h := newHarness(t)
	h.tickets.byID["9876543210"] = ticketFixture("TKT-77aa88bb", "9876543210")
	ctx := context.Background()

	res, err := h.ticketSvc.LookupTicket(ctx, "+91 9876543210", domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "TKT-77aa88bb", res.Ticket.Code)
	assert.Equal(t, "04-Mar-2025", res.CreatedDate)
	assert.Equal(t, "mobile_number", string(res.SearchMethod))
	assert.Equal(t, "+91 9876543210", res.SearchValue)

	lookups := h.recorder.ofType(events.EventChatExchanged)
	require.Len(t, lookups, 1)
	payload := lookups[0].Payload.(events.ChatExchangedPayload)
	assert.Equal(t, "ticket_status_lookup:+91 9876543210", payload.UserInput)
	assert.False(t, payload.Recorded)

	_, err = h.ticketSvc.LookupTicket(ctx, "TKT-missing1", domain.LanguageMarathi)
	de := requireDomainError(t, err, http.StatusNotFound)
	assert.Equal(t, catalog.For(domain.LanguageMarathi).TicketNotFound, de.Message)
	assert.Equal(t, "ticket_id", de.Details["search_method"])

	_, err = h.ticketSvc.LookupTicket(ctx, "9123456780", domain.LanguageEnglish)
	de = requireDomainError(t, err, http.StatusNotFound)
	assert.Equal(t, catalog.MobileSearchNotFound(domain.LanguageEnglish, "9123456780"), de.Message)

	_, err = h.ticketSvc.LookupTicket(ctx, "  ", domain.LanguageEnglish)
	requireDomainError(t, err, http.StatusBadRequest)

	h.tickets.err = errors.New("timeout")
	_, err = h.ticketSvc.LookupTicket(ctx, "TKT-ab12cd", domain.LanguageEnglish)
	de = requireDomainError(t, err, http.StatusServiceUnavailable)
	assert.Equal(t, catalog.For(domain.LanguageEnglish).StatusLookupFailed, de.Message)
}

func TestSearchByPhone(t *testing.T) {
	h := newHarness(t)
	h.tickets.byPhone["9876543210"] = []domain.TicketRecord{*ticketFixture("TKT-1", "9876543210"), *ticketFixture("TKT-2", "9876543210")}
	ctx := context.Background()

	res, err := h.ticketSvc.SearchByPhone(ctx, "09876543210", "")
	require.NoError(t, err)
	assert.Len(t, res.Tickets, 2)
	assert.Equal(t, domain.LanguageEnglish, res.Language)

	_, err = h.ticketSvc.SearchByPhone(ctx, "9000000000", domain.LanguageMarathi)
	de := requireDomainError(t, err, http.StatusNotFound)
	assert.Equal(t, catalog.For(domain.LanguageMarathi).UserSearchEmpty, de.Message)
}

func TestRegisterTicket(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ticket, err := h.ticketSvc.RegisterTicket(ctx, TicketCreateInput{
		EmployeeName:  "R. Patil",
		MobileNumber:  "+919876543210",
		Priority:      "उच्च",
		IssueCategory: "Pension",
		Subject:       "Pension not credited",
	})
	require.NoError(t, err)
	assert.Equal(t, "TKT-0a1b2c3d", ticket.Code)
	assert.Equal(t, "9876543210", ticket.MobileNumber)
	assert.Equal(t, domain.TicketPriorityHigh, ticket.Priority)

	registered := h.recorder.ofType(events.EventTicketRegistered)
	require.Len(t, registered, 1)
	assert.Equal(t, "TKT-0a1b2c3d", registered[0].Payload.(events.TicketRegisteredPayload).TicketCode)

	_, err = h.ticketSvc.RegisterTicket(ctx, TicketCreateInput{IssueCategory: "Pension"})
	requireDomainError(t, err, http.StatusBadRequest)

	_, err = h.ticketSvc.RegisterTicket(ctx, TicketCreateInput{IssueCategory: "Pension", Subject: "x", MobileNumber: "12345"})
	requireDomainError(t, err, http.StatusBadRequest)

	h.tickets.err = repository.ErrDatabaseUnavailable
	_, err = h.ticketSvc.RegisterTicket(ctx, TicketCreateInput{IssueCategory: "Pension", Subject: "x"})
	requireDomainError(t, err, http.StatusServiceUnavailable)
}

func TestDatabaseStats(t *testing.T) {
	h := newHarness(t)

	stats, err := h.ticketSvc.DatabaseStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Tickets.Total)
	assert.Equal(t, int64(1), stats.Channel.Total)
	assert.Equal(t, "grievance", stats.Info.DatabaseName)

	offline := NewTicketService(TicketDependencies{TicketRepo: h.tickets, Database: fakeDatabase{}})
	_, err = offline.DatabaseStats(context.Background())
	requireDomainError(t, err, http.StatusServiceUnavailable)
	assert.False(t, offline.DatabaseInfo(context.Background()).Connected)
}

func TestSubmitRating(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.ratingSvc.SubmitRating(ctx, RatingInput{Rating: 4, Language: "mr", SessionID: "sess-1"})
	require.NoError(t, err)
	assert.Equal(t, "खूप चांगले", res.RatingLabel)
	assert.Equal(t, catalog.RatingThanks(domain.LanguageMarathi, 4, "खूप चांगले"), res.Message)
	assert.Equal(t, catalog.For(domain.LanguageMarathi).RatingThankYou, res.ThankYou)

	turns := h.history.Get("sess-1")
	require.Len(t, turns, 1)
	assert.Equal(t, "Rating: 4/5", turns[0].User)

	generated, err := h.ratingSvc.SubmitRating(ctx, RatingInput{Rating: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, generated.SessionID)
	assert.Equal(t, "Excellent", generated.RatingLabel)

	_, err = h.ratingSvc.SubmitRating(ctx, RatingInput{Rating: 6, Language: "en"})
	de := requireDomainError(t, err, http.StatusBadRequest)
	assert.Equal(t, catalog.For(domain.LanguageEnglish).InvalidRatingData, de.Message)

	stats := h.ratingSvc.RatingStats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 4.5, stats.Average)
	assert.Equal(t, 2, h.ratingSvc.RatingCount())
}

func TestExportRatings(t *testing.T) {
	h := newHarness(t)

	_, err := h.ratingSvc.ExportRatings()
	requireDomainError(t, err, http.StatusNotFound)

	_, err = h.ratingSvc.SubmitRating(context.Background(), RatingInput{Rating: 3, Language: "en", TicketID: "TKT-ab12cd"})
	require.NoError(t, err)

	export, err := h.ratingSvc.ExportRatings()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(export.Filename, "maha_aastha_ratings_"))
	content := string(export.Content)
	assert.True(t, strings.HasPrefix(content, "\uFEFFtimestamp,session_id,rating,feedback,language,ticket_id"))
	assert.Contains(t, content, ",3,Good,en,TKT-ab12cd")
}
