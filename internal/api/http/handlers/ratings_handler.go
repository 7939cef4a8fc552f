package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/aastha-chatbot/internal/api/dto"
	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/service"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

// RatingsHandler manages rating submission and the ledger reports.
type RatingsHandler struct {
	service *service.RatingService
}

// NewRatingsHandler constructs handler.
func NewRatingsHandler(ratingService *service.RatingService) *RatingsHandler {
	return &RatingsHandler{service: ratingService}
}

// Submit POST /rating/.
func (h *RatingsHandler) Submit(c *fiber.Ctx) error {
	var req dto.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(&req); details != nil {
		return apperrors.NewValidationError(catalog.For(dto.Language(req.Language)).InvalidRatingData, details)
	}

	res, err := h.service.SubmitRating(c.UserContext(), service.RatingInput{
		Rating:       req.Rating,
		SessionID:    req.SessionID,
		Language:     req.Language,
		TicketID:     req.TicketID,
		FeedbackText: req.FeedbackText,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.RatingResponse{
		Success:     true,
		Message:     res.Message,
		ThankYou:    res.ThankYou,
		Rating:      res.Rating,
		RatingLabel: res.RatingLabel,
		SessionID:   res.SessionID,
	})
}

// Export GET /ratings/export.
func (h *RatingsHandler) Export(c *fiber.Ctx) error {
	export, err := h.service.ExportRatings()
	if err != nil {
		return err
	}
	c.Attachment(export.Filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(export.Content)
}

// Stats GET /ratings/stats.
func (h *RatingsHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.service.RatingStats())
}
