package dto

import (
	"strings"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// QueryRequest payload. Emptiness, length and language are checked by the
// conversation service so the rejection can be localized.
type QueryRequest struct {
	InputText string `json:"input_text"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
	Language  string `json:"language"`
}

// QueryResponse is the chatbot reply.
type QueryResponse struct {
	Reply            string          `json:"reply"`
	Language         domain.Language `json:"language"`
	SessionID        string          `json:"session_id"`
	DetectedLanguage domain.Language `json:"detected_language"`
}

// SessionsResponse lists the stage of every live session.
type SessionsResponse struct {
	TotalSessions int                     `json:"total_sessions"`
	Sessions      map[string]domain.Stage `json:"sessions"`
	Timestamp     string                  `json:"timestamp"`
}

// HistoryResponse lists recorded turns, newest first.
type HistoryResponse struct {
	SessionID string            `json:"session_id"`
	Count     int               `json:"count"`
	History   []domain.ChatTurn `json:"history"`
}

// SuggestionsResponse payload.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
	Language    string   `json:"language"`
	Total       int      `json:"total"`
}

// LanguagesResponse payload.
type LanguagesResponse struct {
	SupportedLanguages []domain.Language `json:"supported_languages"`
	LanguageDetails    any               `json:"language_details"`
}

// Language maps a request language to a supported one, defaulting to English.
func Language(raw string) domain.Language {
	if lang, ok := domain.ParseLanguage(strings.ToLower(strings.TrimSpace(raw))); ok {
		return lang
	}
	return domain.LanguageEnglish
}
