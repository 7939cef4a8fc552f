package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/aastha-chatbot/internal/api/dto"
	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/service"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

// ChatHandler serves the conversational endpoints.
type ChatHandler struct {
	conversation *service.ConversationService
}

// NewChatHandler constructs handler.
func NewChatHandler(conversation *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversation: conversation}
}

// Query POST /query/.
func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(&req); details != nil {
		return apperrors.NewValidationError(catalog.For(dto.Language(req.Language)).EmptyQuery, details)
	}

	res, err := h.conversation.HandleQuery(c.UserContext(), service.QueryInput{
		Text:      req.InputText,
		SessionID: req.SessionID,
		Language:  req.Language,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.QueryResponse{
		Reply:            res.Reply,
		Language:         res.Language,
		SessionID:        res.SessionID,
		DetectedLanguage: res.Language,
	})
}

// History GET /history/:session_id.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	turns := h.conversation.History(sessionID)
	return c.JSON(dto.HistoryResponse{SessionID: sessionID, Count: len(turns), History: turns})
}

// Sessions GET /debug/sessions.
func (h *ChatHandler) Sessions(c *fiber.Ctx) error {
	sessions, err := h.conversation.Sessions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.SessionsResponse{
		TotalSessions: len(sessions),
		Sessions:      sessions,
		Timestamp:     time.Now().Format(time.RFC3339),
	})
}

// Suggestions GET /suggestions/?language=.
func (h *ChatHandler) Suggestions(c *fiber.Ctx) error {
	requested := c.Query("language", string(domain.LanguageEnglish))
	suggestions := catalog.Suggestions(domain.Language(requested))
	return c.JSON(dto.SuggestionsResponse{Suggestions: suggestions, Language: requested, Total: len(suggestions)})
}

// Languages GET /languages/.
func (h *ChatHandler) Languages(c *fiber.Ctx) error {
	return c.JSON(dto.LanguagesResponse{
		SupportedLanguages: domain.SupportedLanguages,
		LanguageDetails:    catalog.LanguageDetails(),
	})
}
