package models

import (
	"database/sql"
	"time"
)

// TrainingSession is the persistent record of one quiz run. The pending
// question columns and QuestionSeq hold the scratch state for the question
// currently shown to the user; QuestionSeq is bumped on every question change
// and acts as the optimistic version for answer submission.
type TrainingSession struct {
	ID                  int64         `json:"id" db:"id"`
	UserID              int64         `json:"user_id" db:"user_id"`
	SessionType         string        `json:"session_type" db:"session_type"`
	Direction           string        `json:"direction" db:"direction"`
	TotalQuestions      int           `json:"total_questions" db:"total_questions"`
	CorrectAnswers      int           `json:"correct_answers" db:"correct_answers"`
	Accuracy            float64       `json:"accuracy" db:"accuracy"`
	PendingWordID       sql.NullInt64 `json:"-" db:"pending_word_id"`
	PendingCorrectIndex sql.NullInt64 `json:"-" db:"pending_correct_index"`
	QuestionSeq         int64         `json:"-" db:"question_seq"`
	EndedAt             sql.NullTime  `json:"ended_at" db:"ended_at"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
}

// Ended reports whether the session is terminal.
func (s *TrainingSession) Ended() bool {
	return s.EndedAt.Valid
}
