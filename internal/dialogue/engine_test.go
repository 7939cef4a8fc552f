package dialogue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

type fakeStore struct {
	tickets map[string]*domain.TicketRecord
	err     error
	calls   []string
}

func (f *fakeStore) LookupStatus(_ context.Context, identifier string) (*domain.TicketRecord, error) {
	f.calls = append(f.calls, identifier)
	if f.err != nil {
		return nil, f.err
	}
	return f.tickets[identifier], nil
}

func resolvedTicket(code string) *domain.TicketRecord {
	created := time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)
	return &domain.TicketRecord{
		Code:          code,
		Status:        domain.TicketStatusResolved,
		EmployeeName:  "S. Kulkarni",
		IssueCategory: "Pension",
		CreatedAt:     &created,
	}
}

func sessionAt(stage domain.Stage) *domain.Session {
	s := domain.NewSession("test-session", domain.LanguageEnglish)
	s.Stage = stage
	return s
}

func TestWaitingForTicketIDThenResolvedTicket(t *testing.T) {
	store := &fakeStore{tickets: map[string]*domain.TicketRecord{"TKT-ab12cd": resolvedTicket("TKT-ab12cd")}}
	engine := NewEngine(store, nil)
	sess := sessionAt(domain.StageWaitingForTicketID)

	res := engine.Handle(context.Background(), "TKT-ab12cd", sess, domain.LanguageEnglish)

	assert.Contains(t, res.Reply, "TKT-ab12cd")
	assert.Contains(t, res.Reply, "Resolved")
	assert.Contains(t, res.Reply, catalog.TrackFooter(domain.LanguageEnglish))
	assert.NotContains(t, res.Reply, "Found using mobile number")
	assert.Equal(t, domain.StageStatusShown, sess.Stage)
	assert.Equal(t, []string{"TKT-ab12cd"}, store.calls)
}

func TestMobileNumberMissFromInitial(t *testing.T) {
	for _, lang := range domain.SupportedLanguages {
		t.Run(string(lang), func(t *testing.T) {
			engine := NewEngine(&fakeStore{}, nil)
			sess := sessionAt(domain.StageInitial)

			res := engine.Handle(context.Background(), "9876543210", sess, lang)

			assert.Equal(t, catalog.MobileNotFound(lang, "9876543210", true), res.Reply)
			assert.Equal(t, "identifier", res.Rule)
			assert.Equal(t, domain.StageInitial, sess.Stage)
		})
	}
}

func TestMobileNumberHitAddsNote(t *testing.T) {
	store := &fakeStore{tickets: map[string]*domain.TicketRecord{"9876543210": resolvedTicket("TKT-55aa66bb")}}
	engine := NewEngine(store, nil)
	sess := sessionAt(domain.StageCompleted)

	res := engine.Handle(context.Background(), "my number is +91 9876543210", sess, domain.LanguageEnglish)

	assert.Contains(t, res.Reply, "TKT-55aa66bb")
	assert.Contains(t, res.Reply, "📱 Found using mobile number: 9876543210")
	assert.Equal(t, domain.StageCompleted, sess.Stage, "a plain identifier hit keeps the stage")
}

func TestStoreFailureIsIdempotent(t *testing.T) {
	storeErr := errors.New("connection refused")
	engine := NewEngine(&fakeStore{err: storeErr}, nil)
	sess := sessionAt(domain.StageWaitingForTicketID)

	first := engine.Handle(context.Background(), "TKT-12345678", sess, domain.LanguageMarathi)
	second := engine.Handle(context.Background(), "TKT-12345678", sess, domain.LanguageMarathi)

	assert.Equal(t, catalog.For(domain.LanguageMarathi).DatabaseError, first.Reply)
	assert.Equal(t, first.Reply, second.Reply)
	assert.ErrorIs(t, first.LookupErr, storeErr)
	assert.Equal(t, domain.StageWaitingForTicketID, sess.Stage)
}

func TestTicketMissUsesGenericMessage(t *testing.T) {
	engine := NewEngine(&fakeStore{}, nil)
	sess := sessionAt(domain.StageWaitingForTicketID)

	res := engine.Handle(context.Background(), "TKT-00000000", sess, domain.LanguageEnglish)

	assert.Equal(t, catalog.For(domain.LanguageEnglish).TicketNotFound, res.Reply)
	assert.Equal(t, domain.StageWaitingForTicketID, sess.Stage)
}

func TestStatusQuestionCarryingIdentifier(t *testing.T) {
	store := &fakeStore{tickets: map[string]*domain.TicketRecord{"TKT-12345678": resolvedTicket("TKT-12345678")}}
	engine := NewEngine(store, nil)
	sess := sessionAt(domain.StageInitial)

	res := engine.Handle(context.Background(), "check status TKT-12345678", sess, domain.LanguageEnglish)

	assert.Contains(t, res.Reply, "TKT-12345678")
	assert.Equal(t, domain.StageStatusShown, sess.Stage)
}

func TestStatusQuestionMobileMissUsesShortMessage(t *testing.T) {
	engine := NewEngine(&fakeStore{}, nil)
	sess := sessionAt(domain.StageInitial)

	res := engine.Handle(context.Background(), "check status 9876543210", sess, domain.LanguageEnglish)

	assert.Equal(t, "Sorry, no ticket found for mobile number 9876543210.", res.Reply)
	assert.Equal(t, domain.StageInitial, sess.Stage)
}

func TestTransitions(t *testing.T) {
	en := catalog.For(domain.LanguageEnglish)
	mr := catalog.For(domain.LanguageMarathi)

	tests := []struct {
		name      string
		stage     domain.Stage
		text      string
		lang      domain.Language
		wantStage domain.Stage
		wantReply string
		wantRule  string
	}{
		{
			name: "status question asks for identifier", stage: domain.StageInitial, text: "Check Status",
			lang: domain.LanguageEnglish, wantStage: domain.StageWaitingForTicketID,
			wantReply: catalog.IdentifierPrompt(domain.LanguageEnglish), wantRule: "status_question",
		},
		{
			name: "marathi status question", stage: domain.StageStatusShown, text: "स्थिती तपासा",
			lang: domain.LanguageMarathi, wantStage: domain.StageWaitingForTicketID,
			wantReply: catalog.IdentifierPrompt(domain.LanguageMarathi), wantRule: "status_question",
		},
		{
			name: "waiting without identifier re-prompts", stage: domain.StageWaitingForTicketID, text: "I forgot it",
			lang: domain.LanguageEnglish, wantStage: domain.StageWaitingForTicketID,
			wantReply: en.InvalidIdentifier, wantRule: "waiting_for_ticket_id",
		},
		{
			name: "waiting beats feedback keyword", stage: domain.StageWaitingForTicketID, text: "feedback",
			lang: domain.LanguageEnglish, wantStage: domain.StageWaitingForTicketID,
			wantReply: en.InvalidIdentifier, wantRule: "waiting_for_ticket_id",
		},
		{
			name: "feedback keyword from any stage", stage: domain.StageCompleted, text: "I want to give feedback",
			lang: domain.LanguageEnglish, wantStage: domain.StageFeedbackQuestion,
			wantReply: catalog.FeedbackPrompt(domain.LanguageEnglish), wantRule: "feedback_keyword",
		},
		{
			name: "feedback yes asks for rating", stage: domain.StageFeedbackQuestion, text: "yes",
			lang: domain.LanguageEnglish, wantStage: domain.StageRatingRequest,
			wantReply: catalog.RatingScale(domain.LanguageEnglish), wantRule: "feedback_answer",
		},
		{
			name: "feedback no completes", stage: domain.StageFeedbackQuestion, text: "no",
			lang: domain.LanguageEnglish, wantStage: domain.StageCompleted,
			wantReply: en.Closing, wantRule: "feedback_answer",
		},
		{
			name: "marathi feedback no completes", stage: domain.StageFeedbackQuestion, text: "नाही",
			lang: domain.LanguageMarathi, wantStage: domain.StageCompleted,
			wantReply: mr.Closing, wantRule: "feedback_answer",
		},
		{
			name: "feedback unknown shows help", stage: domain.StageFeedbackQuestion, text: "maybe later",
			lang: domain.LanguageEnglish, wantStage: domain.StageFeedbackQuestion,
			wantReply: en.HelpText, wantRule: "feedback_answer",
		},
		{
			name: "initial yes registers", stage: domain.StageInitial, text: "yes",
			lang: domain.LanguageEnglish, wantStage: domain.StageRegistrationInfo,
			wantReply: catalog.RegistrationInfo(domain.LanguageEnglish), wantRule: "registration",
		},
		{
			name: "initial marathi yes registers", stage: domain.StageInitial, text: "होय",
			lang: domain.LanguageMarathi, wantStage: domain.StageRegistrationInfo,
			wantReply: catalog.RegistrationInfo(domain.LanguageMarathi), wantRule: "registration",
		},
		{
			name: "initial no goes to feedback", stage: domain.StageInitial, text: "no",
			lang: domain.LanguageEnglish, wantStage: domain.StageFeedbackQuestion,
			wantReply: catalog.FeedbackPrompt(domain.LanguageEnglish), wantRule: "registration",
		},
		{
			name: "initial unknown shows menu", stage: domain.StageInitial, text: "what is this",
			lang: domain.LanguageEnglish, wantStage: domain.StageAwaitingResponse,
			wantReply: catalog.Menu(domain.LanguageEnglish), wantRule: "registration",
		},
		{
			name: "registration keyword from later stage", stage: domain.StageStatusShown, text: "yes register a complaint",
			lang: domain.LanguageEnglish, wantStage: domain.StageRegistrationInfo,
			wantReply: catalog.RegistrationInfo(domain.LanguageEnglish), wantRule: "registration",
		},
		{
			name: "fallback keeps stage", stage: domain.StageAwaitingResponse, text: "hmm",
			lang: domain.LanguageEnglish, wantStage: domain.StageAwaitingResponse,
			wantReply: catalog.Menu(domain.LanguageEnglish), wantRule: "fallback",
		},
		{
			name: "rating stage falls back to menu", stage: domain.StageRatingRequest, text: "5",
			lang: domain.LanguageMarathi, wantStage: domain.StageRatingRequest,
			wantReply: catalog.Menu(domain.LanguageMarathi), wantRule: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			engine := NewEngine(store, nil)
			sess := sessionAt(tt.stage)

			res := engine.Handle(context.Background(), tt.text, sess, tt.lang)

			require.Equal(t, tt.wantRule, res.Rule)
			assert.Equal(t, tt.wantReply, res.Reply)
			assert.Equal(t, tt.wantStage, sess.Stage)
			assert.Empty(t, store.calls)
		})
	}
}

func TestFeedbackNoNeverReturnsToInitial(t *testing.T) {
	engine := NewEngine(&fakeStore{}, nil)
	sess := sessionAt(domain.StageFeedbackQuestion)

	engine.Handle(context.Background(), "no", sess, domain.LanguageEnglish)
	require.Equal(t, domain.StageCompleted, sess.Stage)

	for _, text := range []string{"ok", "hmm", "thanks"} {
		engine.Handle(context.Background(), text, sess, domain.LanguageEnglish)
		assert.NotEqual(t, domain.StageInitial, sess.Stage)
	}
}
