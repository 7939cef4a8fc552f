package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// History keeps the most recent chat turns per session, newest first. Idle
// histories expire with the same TTL as sessions.
type History struct {
	mu       sync.Mutex
	cache    *cache.Cache
	maxTurns int
}

// NewHistory caps each session at maxTurns entries.
func NewHistory(maxTurns int, ttl, cleanup time.Duration) *History {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	return &History{cache: cache.New(ttl, cleanup), maxTurns: maxTurns}
}

// Add prepends a turn and drops anything beyond the cap.
func (h *History) Add(turn domain.ChatTurn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var turns []domain.ChatTurn
	if x, ok := h.cache.Get(turn.SessionID); ok {
		turns = x.([]domain.ChatTurn)
	}
	next := make([]domain.ChatTurn, 0, min(len(turns)+1, h.maxTurns))
	next = append(next, turn)
	for _, t := range turns {
		if len(next) == h.maxTurns {
			break
		}
		next = append(next, t)
	}
	h.cache.Set(turn.SessionID, next, cache.DefaultExpiration)
}

// Get returns a copy of the turns recorded for sessionID.
func (h *History) Get(sessionID string) []domain.ChatTurn {
	h.mu.Lock()
	defer h.mu.Unlock()

	x, ok := h.cache.Get(sessionID)
	if !ok {
		return []domain.ChatTurn{}
	}
	turns := x.([]domain.ChatTurn)
	out := make([]domain.ChatTurn, len(turns))
	copy(out, turns)
	return out
}
