package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/aastha-chatbot/internal/api/dto"
	"github.com/spec-kit/aastha-chatbot/internal/catalog"
	"github.com/spec-kit/aastha-chatbot/internal/service"
	apperrors "github.com/spec-kit/aastha-chatbot/pkg/util/errorutil"
)

// TicketsHandler manages grievance lookup and registration endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Status POST /ticket/status/.
func (h *TicketsHandler) Status(c *fiber.Ctx) error {
	var req dto.TicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	lang := dto.Language(req.Language)
	if details := dto.Validate(&req); details != nil {
		return apperrors.NewValidationError(catalog.For(lang).EmptyTicketID, details)
	}

	res, err := h.service.LookupTicket(c.UserContext(), req.TicketID, lang)
	if err != nil {
		return err
	}
	var created *string
	if res.CreatedDate != "" {
		created = &res.CreatedDate
	}
	return c.JSON(dto.TicketStatusResponse{
		Success:      true,
		Found:        true,
		Message:      res.Message,
		TicketID:     res.Ticket.Code,
		Status:       res.Ticket.Status,
		CreatedDate:  created,
		Language:     res.Language,
		SearchMethod: string(res.SearchMethod),
		SearchValue:  res.SearchValue,
	})
}

// SearchUser POST /user/search/.
func (h *TicketsHandler) SearchUser(c *fiber.Ctx) error {
	var req dto.UserSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	lang := dto.Language(req.Language)
	if details := dto.Validate(&req); details != nil {
		return apperrors.NewValidationError(catalog.For(lang).EmptyUserIdentifier, details)
	}

	res, err := h.service.SearchByPhone(c.UserContext(), req.UserIdentifier, lang)
	if err != nil {
		return err
	}
	items := make([]dto.TicketView, 0, len(res.Tickets))
	for i := range res.Tickets {
		items = append(items, dto.NewTicketView(&res.Tickets[i]))
	}
	return c.JSON(dto.UserSearchResponse{Found: true, Count: len(items), Tickets: items, Language: res.Language})
}

// CreateTicket POST /tickets/.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(&req); details != nil {
		return apperrors.NewValidationError("employee_name, issue_category, subject required", details)
	}

	ticket, err := h.service.RegisterTicket(c.UserContext(), service.TicketCreateInput{
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		MobileNumber:     req.MobileNumber,
		OfficialEmail:    req.OfficialEmail,
		Designation:      req.Designation,
		Department:       req.Department,
		OfficeName:       req.OfficeName,
		DistrictName:     req.DistrictName,
		UserRole:         req.UserRole,
		Priority:         req.Priority,
		IssueCategory:    req.IssueCategory,
		IssueSubCategory: req.IssueSubCategory,
		Module:           req.Module,
		Section:          req.Section,
		SubSection:       req.SubSection,
		Subject:          req.Subject,
		Description:      req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketView(ticket)})
}

// DatabaseStats GET /database/stats/.
func (h *TicketsHandler) DatabaseStats(c *fiber.Ctx) error {
	stats, err := h.service.DatabaseStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.DatabaseStatsResponse{
		DatabaseInfo:     stats.Info,
		TicketStatistics: stats.Tickets,
		ChatbotTickets:   stats.Channel,
		Timestamp:        stats.Captured.Format(time.RFC3339),
	})
}
