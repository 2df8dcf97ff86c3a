package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// SessionRepository handles database operations for training sessions
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, session_type, direction, total_questions,
	correct_answers, accuracy, pending_word_id, pending_correct_index,
	question_seq, ended_at, created_at`

// Create inserts a new session row with zero counters and fills in its ID.
func (r *SessionRepository) Create(ctx context.Context, session *models.TrainingSession) error {
	if r.db.DriverName() == "postgres" {
		query := `
			INSERT INTO training_sessions (user_id, session_type, direction)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`
		err := r.db.QueryRowxContext(ctx, query,
			session.UserID, session.SessionType, session.Direction,
		).Scan(&session.ID, &session.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create training session: %w", err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO training_sessions (user_id, session_type, direction) VALUES (?, ?, ?)",
		session.UserID, session.SessionType, session.Direction)
	if err != nil {
		return fmt.Errorf("failed to create training session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	session.ID = id
	return nil
}

// Get returns the session with the given ID, or nil if absent. Accepts any
// queryer so it can run inside a transaction.
func (r *SessionRepository) Get(ctx context.Context, q sqlx.ExtContext, id int64) (*models.TrainingSession, error) {
	var session models.TrainingSession
	query := q.Rebind(fmt.Sprintf("SELECT %s FROM training_sessions WHERE id = ?", sessionColumns))
	err := sqlx.GetContext(ctx, q, &session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get training session: %w", err)
	}
	return &session, nil
}

// SetPendingQuestion stores the scratch state for a freshly generated
// question and bumps the question sequence. Returns false when the session
// has already ended.
func (r *SessionRepository) SetPendingQuestion(ctx context.Context, sessionID, wordID int64, correctIndex int) (bool, error) {
	query := r.db.Rebind(`
		UPDATE training_sessions
		SET pending_word_id = ?, pending_correct_index = ?, question_seq = question_seq + 1
		WHERE id = ? AND ended_at IS NULL`)
	result, err := r.db.ExecContext(ctx, query, wordID, correctIndex, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to set pending question: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// ApplyAnswer commits one answered question to the session: counters and
// accuracy are replaced and the pending scratch state is cleared. The update
// is guarded by the question sequence read inside the same transaction;
// a false return means a concurrent submission won and the caller's answer
// is stale.
func (r *SessionRepository) ApplyAnswer(ctx context.Context, tx *sqlx.Tx, sessionID, seq int64, total, correct int, accuracy float64) (bool, error) {
	query := tx.Rebind(`
		UPDATE training_sessions
		SET total_questions = ?, correct_answers = ?, accuracy = ?,
		    pending_word_id = NULL, pending_correct_index = NULL,
		    question_seq = question_seq + 1
		WHERE id = ? AND question_seq = ? AND ended_at IS NULL`)
	result, err := tx.ExecContext(ctx, query, total, correct, accuracy, sessionID, seq)
	if err != nil {
		return false, fmt.Errorf("failed to apply answer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// End marks the session terminal and clears any pending question. Ending an
// already-ended session is a no-op.
func (r *SessionRepository) End(ctx context.Context, sessionID int64) error {
	query := r.db.Rebind(`
		UPDATE training_sessions
		SET ended_at = CURRENT_TIMESTAMP,
		    pending_word_id = NULL, pending_correct_index = NULL
		WHERE id = ? AND ended_at IS NULL`)
	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to end training session: %w", err)
	}
	return nil
}

// Latest returns the user's most recently created session, or nil.
func (r *SessionRepository) Latest(ctx context.Context, q sqlx.ExtContext, telegramID int64) (*models.TrainingSession, error) {
	var session models.TrainingSession
	query := q.Rebind(fmt.Sprintf(`
		SELECT %s FROM training_sessions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, sessionColumns))
	err := sqlx.GetContext(ctx, q, &session, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}
	return &session, nil
}

// CountForUser returns how many sessions the user has ever started. Feeds the
// first_training achievement.
func (r *SessionRepository) CountForUser(ctx context.Context, q sqlx.ExtContext, telegramID int64) (int, error) {
	var count int
	query := q.Rebind("SELECT COUNT(*) FROM training_sessions WHERE user_id = ?")
	if err := sqlx.GetContext(ctx, q, &count, query, telegramID); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// UserStats aggregates a user's training history for the statistics view.
type UserStats struct {
	TotalSessions  int     `db:"total_sessions"`
	TotalQuestions int     `db:"total_questions"`
	TotalCorrect   int     `db:"total_correct"`
	AvgAccuracy    float64 `db:"avg_accuracy"`
}

// GetUserStats returns aggregate training statistics for a user.
func (r *SessionRepository) GetUserStats(ctx context.Context, telegramID int64) (*UserStats, error) {
	var stats UserStats
	query := r.db.Rebind(`
		SELECT COUNT(id) AS total_sessions,
		       COALESCE(SUM(total_questions), 0) AS total_questions,
		       COALESCE(SUM(correct_answers), 0) AS total_correct,
		       COALESCE(AVG(accuracy), 0) AS avg_accuracy
		FROM training_sessions
		WHERE user_id = ?`)
	if err := r.db.GetContext(ctx, &stats, query, telegramID); err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return &stats, nil
}

// CountToday returns how many sessions the user started since midnight UTC.
// Used by the statistics view and the reminder scheduler.
func (r *SessionRepository) CountToday(ctx context.Context, telegramID int64) (int, error) {
	var count int
	var query string
	if r.db.DriverName() == "postgres" {
		query = "SELECT COUNT(*) FROM training_sessions WHERE user_id = $1 AND created_at >= date_trunc('day', NOW())"
	} else {
		query = "SELECT COUNT(*) FROM training_sessions WHERE user_id = ? AND created_at >= date('now')"
	}
	if err := r.db.GetContext(ctx, &count, query, telegramID); err != nil {
		return 0, fmt.Errorf("failed to count today's sessions: %w", err)
	}
	return count, nil
}
