package models

import "time"

// Answer is the append-only record of one answered question.
type Answer struct {
	ID           int64     `json:"id" db:"id"`
	SessionID    int64     `json:"session_id" db:"session_id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	WordID       int64     `json:"word_id" db:"word_id"`
	QuestionType string    `json:"question_type" db:"question_type"`
	UserAnswer   string    `json:"user_answer" db:"user_answer"`
	IsCorrect    bool      `json:"is_correct" db:"is_correct"`
	AnsweredAt   time.Time `json:"answered_at" db:"answered_at"`
}
