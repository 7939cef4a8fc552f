package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

const (
	utf8BOM         = "\uFEFF"
	ratingTimestamp = "2006-01-02 15:04:05"
	latestRatings   = 10
)

var ratingHeader = []string{"timestamp", "session_id", "rating", "feedback", "language", "ticket_id"}

// RatingRepository is an append-only ledger of user ratings.
type RatingRepository interface {
	Append(entry domain.RatingEntry) error
	Len() int
	ExportCSV(w io.Writer) error
	Stats() domain.RatingStats
}

// ratingLedger keeps every entry in memory and mirrors it to a daily CSV file. Disk
// failures fall back to the temp dir and then to memory only; Append never loses the
// in-memory entry.
type ratingLedger struct {
	mu      sync.Mutex
	entries []domain.RatingEntry
	dir     string
	tempDir string
	now     func() time.Time
	logger  *zap.Logger
}

// NewRatingRepository writes daily files under dir.
func NewRatingRepository(dir string, logger *zap.Logger) RatingRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ratingLedger{dir: dir, tempDir: os.TempDir(), now: time.Now, logger: logger}
}

func (l *ratingLedger) Append(entry domain.RatingEntry) error {
	if entry.Rating < 1 || entry.Rating > 5 {
		return fmt.Errorf("rating %d out of range", entry.Rating)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}
	if entry.TicketID == "" {
		entry.TicketID = "N/A"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)

	day := entry.Timestamp.Format("20060102")
	primary := filepath.Join(l.dir, "ratings_log_"+day+".csv")
	if err := l.appendFile(primary, entry); err != nil {
		fallback := filepath.Join(l.tempDir, "maha_aastha_ratings_"+day+".csv")
		if ferr := l.appendFile(fallback, entry); ferr != nil {
			l.logger.Warn("rating kept in memory only",
				zap.String("session_id", entry.SessionID),
				zap.Error(errors.Join(err, ferr)),
			)
			return nil
		}
		l.logger.Info("rating saved to alternative location", zap.String("path", fallback), zap.Error(err))
	}
	return nil
}

func (l *ratingLedger) appendFile(path string, entry domain.RatingEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		if _, err := io.WriteString(f, utf8BOM); err != nil {
			return err
		}
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(ratingHeader); err != nil {
			return err
		}
	}
	if err := w.Write(ratingRecord(entry)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func ratingRecord(e domain.RatingEntry) []string {
	return []string{
		e.Timestamp.Format(ratingTimestamp),
		e.SessionID,
		strconv.Itoa(e.Rating),
		e.Label,
		string(e.Language),
		e.TicketID,
	}
}

func (l *ratingLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ExportCSV writes a BOM, the header and every entry in insertion order.
func (l *ratingLedger) ExportCSV(w io.Writer) error {
	l.mu.Lock()
	rows := make([]domain.RatingEntry, len(l.entries))
	copy(rows, l.entries)
	l.mu.Unlock()

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ratingHeader); err != nil {
		return err
	}
	for _, e := range rows {
		if err := cw.Write(ratingRecord(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (l *ratingLedger) Stats() domain.RatingStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := domain.RatingStats{
		Total:                len(l.entries),
		Distribution:         map[string]int{},
		LanguageDistribution: map[string]int{},
	}
	if stats.Total == 0 {
		return stats
	}

	sum := 0
	for r := 1; r <= 5; r++ {
		stats.Distribution[strconv.Itoa(r)] = 0
	}
	for _, e := range l.entries {
		sum += e.Rating
		stats.Distribution[strconv.Itoa(e.Rating)]++
		stats.LanguageDistribution[string(e.Language)]++
	}
	stats.Average = math.Round(float64(sum)/float64(stats.Total)*100) / 100

	start := max(0, len(l.entries)-latestRatings)
	stats.Latest = append([]domain.RatingEntry(nil), l.entries[start:]...)
	return stats
}
