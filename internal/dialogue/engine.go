// Package dialogue implements the grievance conversation state machine: an ordered
// list of rules evaluated top to bottom against one inbound message, where the first
// matching rule decides the reply and the next stage.
package dialogue

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/detect"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// TicketStore resolves a ticket code or mobile number to the newest matching ticket.
// A miss is (nil, nil); errors mean the store itself failed.
type TicketStore interface {
	LookupStatus(ctx context.Context, identifier string) (*domain.TicketRecord, error)
}

// Result is the outcome of one message.
type Result struct {
	Reply string
	// Rule names the rule that produced the reply.
	Rule string
	// LookupErr is the store failure behind a database-error reply, if any.
	LookupErr error
}

// Engine is stateless; all conversation state lives in the session passed to Handle.
type Engine struct {
	store  TicketStore
	logger *zap.Logger
	rules  []rule
}

// NewEngine wires the rule list against store.
func NewEngine(store TicketStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{store: store, logger: logger}
	e.rules = []rule{
		{name: "identifier", when: hasIdentifier, then: e.lookup},
		{name: "status_question", when: isStatusQuestion, then: askForIdentifier},
		{name: "waiting_for_ticket_id", when: inStage(domain.StageWaitingForTicketID), then: repromptIdentifier},
		{name: "feedback_keyword", when: mentionsFeedback, then: startFeedback},
		{name: "feedback_answer", when: inStage(domain.StageFeedbackQuestion), then: answerFeedback},
		{name: "registration", when: startsRegistration, then: answerRegistration},
		{name: "fallback", when: always, then: showMenu},
	}
	return e
}

// Handle produces the reply for text and advances sess.Stage in place. Store failures
// yield the localized database-error reply and leave the stage untouched.
func (e *Engine) Handle(ctx context.Context, text string, sess *domain.Session, lang domain.Language) Result {
	t := &turn{ctx: ctx, text: text, lang: lang, sess: sess}
	t.id, t.hasID = detect.Detect(text)

	for _, r := range e.rules {
		if r.when(t) {
			r.then(t)
			return Result{Reply: t.reply, Rule: r.name, LookupErr: t.err}
		}
	}
	return Result{Reply: catalog.Menu(lang), Rule: "fallback"}
}

type turn struct {
	ctx   context.Context
	text  string
	lang  domain.Language
	sess  *domain.Session
	id    detect.Identifier
	hasID bool

	reply string
	err   error
}

func (t *turn) msgs() *catalog.Messages { return catalog.For(t.lang) }

type rule struct {
	name string
	when func(*turn) bool
	then func(*turn)
}

func hasIdentifier(t *turn) bool { return t.hasID }

func isStatusQuestion(t *turn) bool { return detect.IsStatusQuestion(t.text, t.lang) }

func mentionsFeedback(t *turn) bool { return detect.MentionsFeedback(t.text) }

func always(*turn) bool { return true }

func inStage(s domain.Stage) func(*turn) bool {
	return func(t *turn) bool { return t.sess.Stage == s }
}

func startsRegistration(t *turn) bool {
	return t.sess.Stage == domain.StageInitial || detect.MentionsRegistration(t.text)
}

// lookup answers any message carrying a valid identifier. When the user was asked for
// an identifier, or asked for a status in the same message, a hit also moves the
// conversation to status_shown.
func (e *Engine) lookup(t *turn) {
	statusContext := t.sess.Stage == domain.StageWaitingForTicketID || detect.IsStatusQuestion(t.text, t.lang)

	ticket, err := e.store.LookupStatus(t.ctx, t.id.Value)
	if err != nil {
		e.logger.Error("ticket lookup failed",
			zap.String("session_id", t.sess.ID),
			zap.String("identifier_kind", string(t.id.Kind)),
			zap.Error(err),
		)
		t.err = err
		t.reply = t.msgs().DatabaseError
		return
	}

	if ticket == nil {
		switch {
		case !t.id.IsMobile():
			t.reply = t.msgs().TicketNotFound
		case statusContext:
			t.reply = catalog.MobileNotFound(t.lang, t.id.Value, false)
		default:
			t.reply = catalog.MobileNotFound(t.lang, t.id.Value, true)
		}
		return
	}

	reply := catalog.TicketStatus(ticket, t.lang)
	if t.id.IsMobile() {
		reply += "\n\n" + catalog.MobileMatchNote(t.lang, t.id.Value)
	}
	t.reply = reply + "\n\n" + catalog.TrackFooter(t.lang)
	if statusContext {
		t.sess.Stage = domain.StageStatusShown
	}
}

func askForIdentifier(t *turn) {
	t.sess.Stage = domain.StageWaitingForTicketID
	t.reply = catalog.IdentifierPrompt(t.lang)
}

func repromptIdentifier(t *turn) {
	t.reply = t.msgs().InvalidIdentifier
}

func startFeedback(t *turn) {
	t.sess.Stage = domain.StageFeedbackQuestion
	t.reply = catalog.FeedbackPrompt(t.lang)
}

func answerFeedback(t *turn) {
	switch detect.DetectYesNo(t.text, t.lang) {
	case detect.Yes:
		t.sess.Stage = domain.StageRatingRequest
		t.reply = catalog.RatingScale(t.lang)
	case detect.No:
		t.sess.Stage = domain.StageCompleted
		t.reply = t.msgs().Closing
	default:
		t.reply = t.msgs().HelpText
	}
}

func answerRegistration(t *turn) {
	switch detect.DetectYesNo(t.text, t.lang) {
	case detect.Yes:
		t.sess.Stage = domain.StageRegistrationInfo
		t.reply = catalog.RegistrationInfo(t.lang)
	case detect.No:
		t.sess.Stage = domain.StageFeedbackQuestion
		t.reply = catalog.FeedbackPrompt(t.lang)
	default:
		t.sess.Stage = domain.StageAwaitingResponse
		t.reply = catalog.Menu(t.lang)
	}
}

func showMenu(t *turn) {
	t.reply = catalog.Menu(t.lang)
}
