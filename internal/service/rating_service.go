package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/events"
	"github.com/spec-kit/aastha-chatbot/internal/repository"
	"github.com/spec-kit/aastha-chatbot/internal/session"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

// RatingService records star ratings and serves the ledger.
type RatingService struct {
	ratings    repository.RatingRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// RatingInput is one rating submission.
type RatingInput struct {
	Rating       int
	SessionID    string
	Language     string
	TicketID     string
	FeedbackText string
}

// RatingResult acknowledges a stored rating.
type RatingResult struct {
	Message     string
	ThankYou    string
	Rating      int
	RatingLabel string
	SessionID   string
}

// RatingExport is a CSV rendering of the ledger.
type RatingExport struct {
	Filename string
	Content  []byte
}

// NewRatingService constructs the service.
func NewRatingService(ratings repository.RatingRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingService{ratings: ratings, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// SubmitRating validates and appends a rating. The stored feedback is the catalog label
// for the rating; free text is only logged.
func (s *RatingService) SubmitRating(ctx context.Context, in RatingInput) (*RatingResult, error) {
	lang, ok := domain.ParseLanguage(strings.ToLower(strings.TrimSpace(in.Language)))
	if !ok {
		lang = domain.LanguageEnglish
		if strings.TrimSpace(in.Language) != "" {
			return nil, apperrors.NewValidationError(catalog.UnsupportedLanguage(in.Language), map[string]any{"field": "language"})
		}
	}
	label, ok := catalog.RatingLabel(lang, in.Rating)
	if !ok {
		return nil, apperrors.NewValidationError(catalog.For(lang).InvalidRatingData, map[string]any{"field": "rating"})
	}

	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = session.NewID()
	}

	entry := domain.RatingEntry{
		Timestamp: s.now(),
		SessionID: sessionID,
		Rating:    in.Rating,
		Label:     label,
		Language:  lang,
		TicketID:  strings.TrimSpace(in.TicketID),
	}
	if entry.TicketID == "" {
		entry.TicketID = "N/A"
	}
	if err := s.ratings.Append(entry); err != nil {
		s.logger.Error("failed to save rating", zap.String("session_id", sessionID), zap.Error(err))
		return nil, apperrors.NewDomainError("RATING_SAVE_FAILED", catalog.For(lang).RatingSaveFailed, http.StatusInternalServerError, nil)
	}
	if text := strings.TrimSpace(in.FeedbackText); text != "" {
		s.logger.Info("rating feedback text", zap.String("session_id", sessionID), zap.String("feedback_text", text))
	}

	thankYou := catalog.For(lang).RatingThankYou
	message := catalog.RatingThanks(lang, in.Rating, label)
	s.publish(ctx, events.New(events.EventRatingSubmitted, sessionID, events.RatingSubmittedPayload{
		Entry: entry,
		Reply: thankYou + "\n\n" + message,
	}))

	return &RatingResult{
		Message:     message,
		ThankYou:    thankYou,
		Rating:      in.Rating,
		RatingLabel: label,
		SessionID:   sessionID,
	}, nil
}

// ExportRatings renders the ledger as a BOM-prefixed CSV attachment.
func (s *RatingService) ExportRatings() (*RatingExport, error) {
	if s.ratings.Len() == 0 {
		return nil, apperrors.NewNotFound(catalog.For(domain.LanguageEnglish).NoRatingsToExport, nil)
	}
	var buf bytes.Buffer
	if err := s.ratings.ExportCSV(&buf); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &RatingExport{
		Filename: "maha_aastha_ratings_" + s.now().Format("20060102_150405") + ".csv",
		Content:  buf.Bytes(),
	}, nil
}

// RatingStats summarizes the ledger.
func (s *RatingService) RatingStats() domain.RatingStats {
	return s.ratings.Stats()
}

// RatingCount reports stored ratings.
func (s *RatingService) RatingCount() int {
	return s.ratings.Len()
}

func (s *RatingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
