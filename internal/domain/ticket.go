package domain

import "time"

// TicketStatus enumerates lifecycle states for grievance tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
	TicketStatusPending    TicketStatus = "Pending"
)

// TicketPriority enumerates grievance urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

var priorityLabels = map[string]TicketPriority{
	"Low":     TicketPriorityLow,
	"कमी":     TicketPriorityLow,
	"Medium":  TicketPriorityMedium,
	"मध्यम":   TicketPriorityMedium,
	"High":    TicketPriorityHigh,
	"उच्च":    TicketPriorityHigh,
	"Urgent":  TicketPriorityUrgent,
	"तातडीचे": TicketPriorityUrgent,
}

// ParsePriority maps an English or Marathi priority label to a TicketPriority,
// returning fallback for anything unrecognized.
func ParsePriority(label string, fallback TicketPriority) TicketPriority {
	if p, ok := priorityLabels[label]; ok {
		return p
	}
	return fallback
}

// TicketRecord is a grievance as stored in the grievancess table. Code is unique and
// immutable; only Status and UpdatedAt change after creation.
type TicketRecord struct {
	ID               int64
	Code             string
	EmployeeID       string
	EmployeeName     string
	MobileNumber     string
	OfficialEmail    string
	Designation      string
	Department       string
	OfficeName       string
	DistrictName     *string
	UserRole         string
	Priority         TicketPriority
	IssueTimestamp   *time.Time
	IssueCategory    string
	IssueSubCategory *string
	Module           *string
	Section          *string
	SubSection       *string
	Subject          string
	Description      string
	Status           TicketStatus
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
}

// TicketStats aggregates counts across the grievancess table.
type TicketStats struct {
	Total      int64 `json:"total_tickets"`
	Open       int64 `json:"open_tickets"`
	InProgress int64 `json:"in_progress_tickets"`
	Resolved   int64 `json:"resolved_tickets"`
	Closed     int64 `json:"closed_tickets"`
	Recent7d   int64 `json:"recent_7days"`
}
