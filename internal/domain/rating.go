package domain

import "time"

// RatingEntry is an immutable row of the ratings ledger.
type RatingEntry struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Rating    int       `json:"rating"`
	Label     string    `json:"feedback"`
	Language  Language  `json:"language"`
	TicketID  string    `json:"ticket_id"`
}

// RatingStats summarizes the ledger.
type RatingStats struct {
	Total                int            `json:"total_ratings"`
	Average              float64        `json:"average_rating"`
	Distribution         map[string]int `json:"rating_distribution"`
	LanguageDistribution map[string]int `json:"language_distribution"`
	Latest               []RatingEntry  `json:"latest_ratings,omitempty"`
}
