package handlers

import (
	"context"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
	"github.com/spec-kit/aastha-chatbot/internal/observability"
	"github.com/spec-kit/aastha-chatbot/internal/persistence"
	"github.com/spec-kit/aastha-chatbot/internal/service"
)

// DatabaseProbe is the ticket database as seen by the health endpoints.
type DatabaseProbe interface {
	Connected() bool
	Ping(ctx context.Context) error
	Info(ctx context.Context) persistence.DatabaseInfo
}

// Pinger is any dependency with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes and reports service status.
type HealthHandler struct {
	serviceName  string
	version      string
	database     DatabaseProbe
	redis        Pinger
	conversation *service.ConversationService
	ratings      *service.RatingService
	metrics      *observability.Metrics
}

// HealthDependencies bundles what the status endpoints report on. Redis is nil when
// sessions are kept in memory.
type HealthDependencies struct {
	ServiceName  string
	Version      string
	Database     DatabaseProbe
	Redis        Pinger
	Conversation *service.ConversationService
	Ratings      *service.RatingService
	Metrics      *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{
		serviceName:  deps.ServiceName,
		version:      deps.Version,
		database:     deps.Database,
		redis:        deps.Redis,
		conversation: deps.Conversation,
		ratings:      deps.Ratings,
		metrics:      deps.Metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies. An unconfigured database
// does not block readiness since chat replies degrade to an apology.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	switch {
	case h.database == nil || !h.database.Connected():
		depStatus["postgres"] = "not configured"
	default:
		if err := h.database.Ping(ctx); err != nil {
			depStatus["postgres"] = err.Error()
			ready = false
		} else {
			depStatus["postgres"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			depStatus["redis"] = err.Error()
			ready = false
		} else {
			depStatus["redis"] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Health GET /health/. Reports degraded while the database is unreachable.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	connected := h.databaseReachable(ctx)
	status := "healthy"
	if !connected {
		status = "degraded"
	}
	queries := h.metrics.Queries()

	return c.JSON(fiber.Map{
		"status":         status,
		"timestamp":      float64(time.Now().UnixMilli()) / 1000,
		"uptime_seconds": h.uptimeSeconds(),
		"system_info": fiber.Map{
			"active_sessions":     h.sessionCount(ctx),
			"total_queries":       queries.Total,
			"successful_queries":  queries.Successful,
			"failed_queries":      queries.Failed,
			"total_ratings":       h.ratings.RatingCount(),
			"supported_languages": domain.SupportedLanguages,
			"database_connected":  connected,
		},
	})
}

// Root GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	info := persistence.DatabaseInfo{Connected: false}
	if h.database != nil && h.database.Connected() {
		info = h.database.Info(ctx)
	}

	return c.JSON(fiber.Map{
		"message":        h.serviceName + " is running",
		"system":         "Grievance Redressal System with Database Integration",
		"version":        h.version,
		"uptime_seconds": h.uptimeSeconds(),
		"system_status": fiber.Map{
			"active_sessions":     h.sessionCount(ctx),
			"total_queries":       h.metrics.Queries().Total,
			"total_ratings":       h.ratings.RatingCount(),
			"supported_languages": domain.SupportedLanguages,
			"database_connected":  info.Connected,
			"database_info":       info,
		},
	})
}

func (h *HealthHandler) databaseReachable(ctx context.Context) bool {
	if h.database == nil || !h.database.Connected() {
		return false
	}
	return h.database.Ping(ctx) == nil
}

func (h *HealthHandler) sessionCount(ctx context.Context) int {
	n, err := h.conversation.SessionCount(ctx)
	if err != nil {
		return 0
	}
	return n
}

func (h *HealthHandler) uptimeSeconds() float64 {
	return math.Round(h.metrics.Uptime().Seconds()*100) / 100
}
