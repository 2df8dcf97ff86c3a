package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// AnswerRepository handles database operations for answers
type AnswerRepository struct {
	db *sqlx.DB
}

// NewAnswerRepository creates a new repository instance
func NewAnswerRepository(db *sqlx.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create appends one answer record. Runs on the caller's transaction so the
// insert commits together with the session counter update.
func (r *AnswerRepository) Create(ctx context.Context, q sqlx.ExtContext, answer *models.Answer) error {
	query := q.Rebind(`
		INSERT INTO answers (session_id, user_id, word_id, question_type, user_answer, is_correct)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		answer.SessionID,
		answer.UserID,
		answer.WordID,
		answer.QuestionType,
		answer.UserAnswer,
		answer.IsCorrect,
	)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

// CountForSession returns how many answers a session has accumulated.
func (r *AnswerRepository) CountForSession(ctx context.Context, sessionID int64) (int, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM answers WHERE session_id = ?")
	if err := r.db.GetContext(ctx, &count, query, sessionID); err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}
