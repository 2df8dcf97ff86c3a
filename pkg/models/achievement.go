package models

import "time"

// Achievement is a static catalogue entry. Condition holds the raw JSON
// unlock rule; parsing lives in internal/achievements.
type Achievement struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Condition   string `json:"condition" db:"condition"`
}

// AchievementUnlock records that a user satisfied an achievement's condition.
// At most one row exists per (user_id, achievement_id); unlocking is permanent.
type AchievementUnlock struct {
	UserID        int64     `json:"user_id" db:"user_id"`
	AchievementID int64     `json:"achievement_id" db:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
	Progress      string    `json:"progress" db:"progress"`
}
