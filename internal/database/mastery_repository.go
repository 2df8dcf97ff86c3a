package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// MasteryRepository is the mastery tracker: it maintains the per-(user, word)
// proficiency level. Levels move one step per answer and are clamped to
// [MinMasteryLevel, MaxMasteryLevel].
type MasteryRepository struct {
	db *sqlx.DB
}

// NewMasteryRepository creates a new repository instance
func NewMasteryRepository(db *sqlx.DB) *MasteryRepository {
	return &MasteryRepository{db: db}
}

// GetLevel returns the current mastery level for the pair, zero if no record
// exists yet.
func (r *MasteryRepository) GetLevel(ctx context.Context, q sqlx.ExtContext, telegramID, wordID int64) (int, error) {
	var level int
	query := q.Rebind("SELECT mastered_level FROM statistics WHERE user_id = ? AND word_id = ?")
	err := sqlx.GetContext(ctx, q, &level, query, telegramID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get mastery level: %w", err)
	}
	return level, nil
}

// RecordOutcome applies one answer to the mastery record, creating it at
// level zero on first contact, and returns the post-update level. It runs on
// the caller's executor so the update commits atomically with the answer
// insert and session counters.
func (r *MasteryRepository) RecordOutcome(ctx context.Context, q sqlx.ExtContext, telegramID, wordID int64, isCorrect bool) (int, error) {
	level, err := r.GetLevel(ctx, q, telegramID, wordID)
	if err != nil {
		return 0, err
	}

	if isCorrect {
		level++
		if level > models.MaxMasteryLevel {
			level = models.MaxMasteryLevel
		}
	} else {
		level--
		if level < models.MinMasteryLevel {
			level = models.MinMasteryLevel
		}
	}

	query := q.Rebind(`
		INSERT INTO statistics (user_id, word_id, mastered_level)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, word_id) DO UPDATE SET mastered_level = ?`)
	args := []interface{}{telegramID, wordID, level, level}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("failed to record mastery outcome: %w", err)
	}

	return level, nil
}

// CountMastered returns how many of the user's words are at or above the
// threshold level. Feeds the words_mastered achievement and the statistics
// view.
func (r *MasteryRepository) CountMastered(ctx context.Context, q sqlx.ExtContext, telegramID int64, threshold int) (int, error) {
	var count int
	query := q.Rebind("SELECT COUNT(*) FROM statistics WHERE user_id = ? AND mastered_level >= ?")
	if err := sqlx.GetContext(ctx, q, &count, query, telegramID, threshold); err != nil {
		return 0, fmt.Errorf("failed to count mastered words: %w", err)
	}
	return count, nil
}

// CountStudied returns how many distinct words the user has answered at
// least once.
func (r *MasteryRepository) CountStudied(ctx context.Context, telegramID int64) (int, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM statistics WHERE user_id = ?")
	if err := r.db.GetContext(ctx, &count, query, telegramID); err != nil {
		return 0, fmt.Errorf("failed to count studied words: %w", err)
	}
	return count, nil
}
