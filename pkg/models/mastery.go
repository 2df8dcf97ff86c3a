package models

import "database/sql"

// Mastery level bounds. A word counts as mastered for statistics and
// achievements once its level reaches MasteredThreshold.
const (
	MinMasteryLevel   = 0
	MaxMasteryLevel   = 5
	MasteredThreshold = 3
)

// MasteryRecord tracks how well a user knows one word, keyed by
// (user_id, word_id). NextReview is reserved for a future review scheduler
// and is never read.
type MasteryRecord struct {
	UserID     int64        `json:"user_id" db:"user_id"`
	WordID     int64        `json:"word_id" db:"word_id"`
	Level      int          `json:"mastered_level" db:"mastered_level"`
	NextReview sql.NullTime `json:"next_review" db:"next_review"`
}
