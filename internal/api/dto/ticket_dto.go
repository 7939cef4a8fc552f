package dto

import (
	"time"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// TicketStatusRequest payload. ticket_id accepts a ticket code or a mobile number.
type TicketStatusRequest struct {
	TicketID string `json:"ticket_id" validate:"required,max=64"`
	Language string `json:"language" validate:"omitempty,oneof=en mr"`
}

// TicketStatusResponse is a direct lookup hit.
type TicketStatusResponse struct {
	Success      bool                `json:"success"`
	Found        bool                `json:"found"`
	Message      string              `json:"message"`
	TicketID     string              `json:"ticket_id"`
	Status       domain.TicketStatus `json:"status"`
	CreatedDate  *string             `json:"created_date"`
	Language     domain.Language     `json:"language"`
	SearchMethod string              `json:"search_method"`
	SearchValue  string              `json:"search_value"`
}

// UserSearchRequest payload.
type UserSearchRequest struct {
	UserIdentifier string `json:"user_identifier" validate:"required,max=20"`
	Language       string `json:"language" validate:"omitempty,oneof=en mr"`
}

// UserSearchResponse lists a caller's tickets.
type UserSearchResponse struct {
	Found    bool            `json:"found"`
	Count    int             `json:"count"`
	Tickets  []TicketView    `json:"tickets"`
	Language domain.Language `json:"language"`
}

// CreateTicketRequest registers a grievance.
type CreateTicketRequest struct {
	EmployeeID       string  `json:"employee_id" validate:"omitempty,max=50"`
	EmployeeName     string  `json:"employee_name" validate:"required,max=255"`
	MobileNumber     string  `json:"mobile_number" validate:"omitempty,max=20"`
	OfficialEmail    string  `json:"official_email" validate:"omitempty,email"`
	Designation      string  `json:"designation" validate:"omitempty,max=255"`
	Department       string  `json:"department" validate:"omitempty,max=255"`
	OfficeName       string  `json:"office_name" validate:"omitempty,max=255"`
	DistrictName     *string `json:"district_name" validate:"omitempty,max=255"`
	UserRole         string  `json:"user_role" validate:"omitempty,max=100"`
	Priority         string  `json:"priority" validate:"omitempty,max=20"`
	IssueCategory    string  `json:"issue_category" validate:"required,max=255"`
	IssueSubCategory *string `json:"issue_sub_category" validate:"omitempty,max=255"`
	Module           *string `json:"module" validate:"omitempty,max=255"`
	Section          *string `json:"section" validate:"omitempty,max=255"`
	SubSection       *string `json:"sub_section" validate:"omitempty,max=255"`
	Subject          string  `json:"subject" validate:"required,max=500"`
	Description      string  `json:"description" validate:"omitempty,max=5000"`
}

// TicketView is the public rendering of a grievance.
type TicketView struct {
	Ticket           string                `json:"ticket"`
	EmployeeID       string                `json:"employee_id,omitempty"`
	EmployeeName     string                `json:"employee_name"`
	MobileNumber     string                `json:"mobile_number"`
	Designation      string                `json:"designation,omitempty"`
	Department       string                `json:"department,omitempty"`
	OfficeName       string                `json:"office_name,omitempty"`
	DistrictName     *string               `json:"district_name,omitempty"`
	Priority         domain.TicketPriority `json:"priority"`
	IssueCategory    string                `json:"issue_category"`
	IssueSubCategory *string               `json:"issue_sub_category,omitempty"`
	Subject          string                `json:"subject"`
	Description      string                `json:"description,omitempty"`
	Status           domain.TicketStatus   `json:"status"`
	CreatedAt        *time.Time            `json:"created_at"`
	UpdatedAt        *time.Time            `json:"updated_at"`
}

// NewTicketView converts a stored ticket.
func NewTicketView(t *domain.TicketRecord) TicketView {
	return TicketView{
		Ticket:           t.Code,
		EmployeeID:       t.EmployeeID,
		EmployeeName:     t.EmployeeName,
		MobileNumber:     t.MobileNumber,
		Designation:      t.Designation,
		Department:       t.Department,
		OfficeName:       t.OfficeName,
		DistrictName:     t.DistrictName,
		Priority:         t.Priority,
		IssueCategory:    t.IssueCategory,
		IssueSubCategory: t.IssueSubCategory,
		Subject:          t.Subject,
		Description:      t.Description,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// DatabaseStatsResponse payload.
type DatabaseStatsResponse struct {
	DatabaseInfo     any    `json:"database_info"`
	TicketStatistics any    `json:"ticket_statistics"`
	ChatbotTickets   any    `json:"chatbot_tickets"`
	Timestamp        string `json:"timestamp"`
}
