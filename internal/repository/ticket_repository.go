package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// ErrDatabaseUnavailable is returned when no pool was configured.
var ErrDatabaseUnavailable = errors.New("database not available")

// TicketRepository reads and writes grievances in the grievancess table.
type TicketRepository interface {
	LookupStatus(ctx context.Context, identifier string) (*domain.TicketRecord, error)
	ListByPhone(ctx context.Context, mobile string) ([]domain.TicketRecord, error)
	Create(ctx context.Context, ticket *domain.TicketRecord) error
	Stats(ctx context.Context) (domain.TicketStats, error)
	ChannelStats(ctx context.Context) (domain.TicketStats, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository. A nil pool yields ErrDatabaseUnavailable
// from every call.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `
        id, ticket, COALESCE(employee_id, ''), COALESCE(employee_name, ''), COALESCE(mobile_number, ''),
        COALESCE(official_email, ''), COALESCE(designation, ''), COALESCE(department, ''),
        COALESCE(office_name, ''), district_name, COALESCE(user_role, ''), COALESCE(priority, 'Low'),
        issue_timestamp, COALESCE(issue_category, ''), issue_sub_category, issue_related,
        issue_section, issue_sub_section, COALESCE(subject, ''), COALESCE(description, ''),
        COALESCE(status, 'Open'), created_at, updated_at`

const historyLimit = 50

// LookupStatus matches the identifier exactly or as a substring of the ticket code, or
// exactly against the mobile number, and returns the newest hit.
func (r *ticketRepository) LookupStatus(ctx context.Context, identifier string) (*domain.TicketRecord, error) {
	if r.pool == nil {
		return nil, ErrDatabaseUnavailable
	}
	identifier = strings.TrimSpace(identifier)
	query := `SELECT ` + ticketColumns + `
        FROM public.grievancess
        WHERE (ticket = $1 OR ticket ILIKE $2 OR mobile_number = $1)
        ORDER BY created_at DESC
        LIMIT 1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, identifier, "%"+escapeLike(identifier)+"%"))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup ticket status: %w", err)
	}
	return ticket, nil
}

func (r *ticketRepository) ListByPhone(ctx context.Context, mobile string) ([]domain.TicketRecord, error) {
	if r.pool == nil {
		return nil, ErrDatabaseUnavailable
	}
	query := `SELECT ` + ticketColumns + `
        FROM public.grievancess
        WHERE mobile_number = $1
        ORDER BY created_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, strings.TrimSpace(mobile), historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list tickets by phone: %w", err)
	}
	defer rows.Close()

	var tickets []domain.TicketRecord
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// Create inserts a new grievance. A missing code is generated as TKT- plus 8 hex digits;
// module, section and sub-section are appended to the description.
func (r *ticketRepository) Create(ctx context.Context, ticket *domain.TicketRecord) error {
	if r.pool == nil {
		return ErrDatabaseUnavailable
	}
	if ticket.Code == "" {
		ticket.Code = NewTicketCode()
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusOpen
	}
	ticket.Priority = domain.ParsePriority(string(ticket.Priority), domain.TicketPriorityMedium)
	ticket.Description = describe(ticket)

	const query = `
        INSERT INTO public.grievancess (
            ticket, employee_id, employee_name, mobile_number,
            official_email, designation, department, office_name,
            district_name, user_role, priority, issue_timestamp,
            issue_category, issue_sub_category, issue_related,
            issue_section, issue_sub_section, subject, description,
            status, files_count, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, NOW()),
            $13, $14, $15, $16, $17, $18, $19, $20, 0, NOW(), NOW()
        ) RETURNING id, issue_timestamp, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ticket.Code,
		ticket.EmployeeID,
		ticket.EmployeeName,
		ticket.MobileNumber,
		ticket.OfficialEmail,
		ticket.Designation,
		ticket.Department,
		ticket.OfficeName,
		ticket.DistrictName,
		ticket.UserRole,
		ticket.Priority,
		ticket.IssueTimestamp,
		ticket.IssueCategory,
		ticket.IssueSubCategory,
		ticket.Module,
		ticket.Section,
		ticket.SubSection,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.IssueTimestamp, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Stats(ctx context.Context) (domain.TicketStats, error) {
	return r.stats(ctx, "")
}

// ChannelStats counts only chatbot-registered tickets, which carry the TKT- prefix.
func (r *ticketRepository) ChannelStats(ctx context.Context) (domain.TicketStats, error) {
	return r.stats(ctx, `WHERE ticket LIKE 'TKT-%'`)
}

func (r *ticketRepository) stats(ctx context.Context, where string) (domain.TicketStats, error) {
	var s domain.TicketStats
	if r.pool == nil {
		return s, ErrDatabaseUnavailable
	}
	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'Open'),
            COUNT(*) FILTER (WHERE status = 'In Progress'),
            COUNT(*) FILTER (WHERE status = 'Resolved'),
            COUNT(*) FILTER (WHERE status = 'Closed'),
            COUNT(*) FILTER (WHERE DATE(created_at) >= CURRENT_DATE - INTERVAL '7 days')
        FROM public.grievancess ` + where

	if err := r.pool.QueryRow(ctx, query).Scan(
		&s.Total, &s.Open, &s.InProgress, &s.Resolved, &s.Closed, &s.Recent7d,
	); err != nil {
		return s, fmt.Errorf("ticket stats: %w", err)
	}
	return s, nil
}

func scanTicket(row pgx.Row) (*domain.TicketRecord, error) {
	var t domain.TicketRecord
	if err := row.Scan(
		&t.ID,
		&t.Code,
		&t.EmployeeID,
		&t.EmployeeName,
		&t.MobileNumber,
		&t.OfficialEmail,
		&t.Designation,
		&t.Department,
		&t.OfficeName,
		&t.DistrictName,
		&t.UserRole,
		&t.Priority,
		&t.IssueTimestamp,
		&t.IssueCategory,
		&t.IssueSubCategory,
		&t.Module,
		&t.Section,
		&t.SubSection,
		&t.Subject,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// NewTicketCode returns a fresh TKT- code with 8 random hex digits.
func NewTicketCode() string {
	id := uuid.New()
	return "TKT-" + hex.EncodeToString(id[:4])
}

func describe(t *domain.TicketRecord) string {
	var b strings.Builder
	b.WriteString(t.Description)
	if v := deref(t.Module); v != "" {
		b.WriteString("\n\nModule: " + v)
	}
	if v := deref(t.Section); v != "" {
		b.WriteString("\nSection: " + v)
	}
	if v := deref(t.SubSection); v != "" {
		b.WriteString("\nSub-Section: " + v)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
