package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// AchievementRepository handles the achievement catalogue and per-user unlocks
type AchievementRepository struct {
	db *sqlx.DB
}

// NewAchievementRepository creates a new repository instance
func NewAchievementRepository(db *sqlx.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Catalogue returns every achievement definition.
func (r *AchievementRepository) Catalogue(ctx context.Context, q sqlx.ExtContext) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := sqlx.SelectContext(ctx, q, &achievements,
		"SELECT id, name, description, icon, condition FROM achievements ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	return achievements, nil
}

// UnlockedIDs returns the set of achievement IDs the user has unlocked.
func (r *AchievementRepository) UnlockedIDs(ctx context.Context, q sqlx.ExtContext, telegramID int64) (map[int64]bool, error) {
	var ids []int64
	query := q.Rebind("SELECT achievement_id FROM user_achievements WHERE user_id = ?")
	if err := sqlx.SelectContext(ctx, q, &ids, query, telegramID); err != nil {
		return nil, fmt.Errorf("failed to get unlocked achievements: %w", err)
	}
	unlocked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		unlocked[id] = true
	}
	return unlocked, nil
}

// Unlocked returns the full achievement rows the user has unlocked, in
// unlock order.
func (r *AchievementRepository) Unlocked(ctx context.Context, telegramID int64) ([]models.Achievement, error) {
	var achievements []models.Achievement
	query := r.db.Rebind(`
		SELECT a.id, a.name, a.description, a.icon, a.condition
		FROM achievements a
		JOIN user_achievements ua ON ua.achievement_id = a.id
		WHERE ua.user_id = ?
		ORDER BY ua.unlocked_at, a.id`)
	if err := r.db.SelectContext(ctx, &achievements, query, telegramID); err != nil {
		return nil, fmt.Errorf("failed to get unlocked achievements: %w", err)
	}
	return achievements, nil
}

// InsertUnlock records an unlock if it isn't recorded already. Returns true
// when this call inserted the row; false means another evaluation got there
// first, which callers treat as "already unlocked", not an error.
func (r *AchievementRepository) InsertUnlock(ctx context.Context, q sqlx.ExtContext, telegramID, achievementID int64) (bool, error) {
	query := q.Rebind(`
		INSERT INTO user_achievements (user_id, achievement_id, progress)
		VALUES (?, ?, '{}')
		ON CONFLICT (user_id, achievement_id) DO NOTHING`)
	result, err := q.ExecContext(ctx, query, telegramID, achievementID)
	if err != nil {
		return false, fmt.Errorf("failed to insert unlock: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
