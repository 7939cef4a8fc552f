// Package session keeps per-conversation dialogue state between chat messages.
package session

import (
	"context"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// Store persists sessions keyed by id. Implementations expire idle sessions.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Session, bool, error)
	Save(ctx context.Context, s *domain.Session) error
	Count(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) (map[string]domain.Stage, error)
}
