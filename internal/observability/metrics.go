package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for HTTP traffic and chat queries.
type Metrics struct {
	mu           sync.Mutex
	startedAt    time.Time
	requestCount map[string]int64
	errorCount   map[string]int64

	totalQueries      int64
	successfulQueries int64
	failedQueries     int64
	lastError         string
}

// QueryStats is a point-in-time copy of the chat query counters.
type QueryStats struct {
	Total      int64  `json:"total_queries"`
	Successful int64  `json:"successful_queries"`
	Failed     int64  `json:"failed_queries"`
	LastError  string `json:"last_error,omitempty"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:    time.Now(),
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// QueryReceived counts an inbound chat query.
func (m *Metrics) QueryReceived() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalQueries++
}

// QuerySucceeded counts a chat query that produced a reply.
func (m *Metrics) QuerySucceeded() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successfulQueries++
}

// QueryFailed counts a rejected or failed chat query and remembers the reason.
func (m *Metrics) QueryFailed(reason string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedQueries++
	if reason != "" {
		m.lastError = reason
	}
}

// Queries returns the chat query counters.
func (m *Metrics) Queries() QueryStats {
	if m == nil {
		return QueryStats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return QueryStats{
		Total:      m.totalQueries,
		Successful: m.successfulQueries,
		Failed:     m.failedQueries,
		LastError:  m.lastError,
	}
}

// Requests returns a copy of the per-route request counters.
func (m *Metrics) Requests() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.requestCount))
	for k, v := range m.requestCount {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the per-route error counters.
func (m *Metrics) Errors() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		out[k] = v
	}
	return out
}

// Uptime is the time since NewMetrics.
func (m *Metrics) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startedAt)
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
