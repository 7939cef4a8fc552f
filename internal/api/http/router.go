package http

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/aastha-chatbot/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Chat    *handlers.ChatHandler
	Tickets *handlers.TicketsHandler
	Ratings *handlers.RatingsHandler
}

// NewApp builds the Fiber app with the goccy JSON codec.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             1 * 1024 * 1024,
	})
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/", cfg.Health.Health)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/query/", cfg.Chat.Query)
	app.Get("/suggestions/", cfg.Chat.Suggestions)
	app.Get("/languages/", cfg.Chat.Languages)
	app.Get("/history/:session_id", cfg.Chat.History)
	app.Get("/debug/sessions", cfg.Chat.Sessions)

	app.Post("/ticket/status/", cfg.Tickets.Status)
	app.Post("/user/search/", cfg.Tickets.SearchUser)
	app.Post("/tickets/", cfg.Tickets.CreateTicket)
	app.Get("/database/stats/", cfg.Tickets.DatabaseStats)

	app.Post("/rating/", cfg.Ratings.Submit)
	app.Get("/ratings/export", cfg.Ratings.Export)
	app.Get("/ratings/stats", cfg.Ratings.Stats)
}
