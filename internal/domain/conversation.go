package domain

import "time"

// Language is a supported reply language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageMarathi Language = "mr"
)

// SupportedLanguages lists languages in display order.
var SupportedLanguages = []Language{LanguageEnglish, LanguageMarathi}

// ParseLanguage reports whether s names a supported language.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case LanguageEnglish, LanguageMarathi:
		return Language(s), true
	}
	return "", false
}

// Stage is the position of a conversation in the dialogue state machine.
type Stage string

const (
	StageInitial            Stage = "initial"
	StageAwaitingResponse   Stage = "awaiting_response"
	StageRegistrationInfo   Stage = "registration_info"
	StageWaitingForTicketID Stage = "waiting_for_ticket_id"
	StageStatusShown        Stage = "status_shown"
	StageFeedbackQuestion   Stage = "feedback_question"
	StageRatingRequest      Stage = "rating_request"
	StageCompleted          Stage = "completed"
)

// Session is the per-conversation state kept between messages.
type Session struct {
	ID        string    `json:"id"`
	Stage     Stage     `json:"stage"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a session in the initial stage.
func NewSession(id string, lang Language) *Session {
	now := time.Now()
	return &Session{ID: id, Stage: StageInitial, Language: lang, CreatedAt: now, UpdatedAt: now}
}

// ChatTurn is one user message and the reply it produced.
type ChatTurn struct {
	SessionID string    `json:"session_id"`
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
