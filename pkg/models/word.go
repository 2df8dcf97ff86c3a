package models

import (
	"database/sql"
	"time"
)

// Word represents a dictionary entry. Shared words have a NULL UserID and are
// visible to everyone; a word with UserID set belongs to that user alone.
type Word struct {
	ID                int64          `json:"id" db:"id"`
	EnglishWord       string         `json:"english_word" db:"english_word"`
	Translation       string         `json:"russian_translation" db:"russian_translation"`
	CategoryID        int64          `json:"category_id" db:"category_id"`
	ExampleSentence   sql.NullString `json:"example_sentence" db:"example_sentence"`
	ExampleSentenceRu sql.NullString `json:"example_sentence_ru" db:"example_sentence_ru"`
	UserID            sql.NullInt64  `json:"user_id" db:"user_id"`
	IsPublic          bool           `json:"is_public" db:"is_public"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
}

// Shared reports whether the word belongs to the common dictionary.
func (w *Word) Shared() bool {
	return !w.UserID.Valid
}
