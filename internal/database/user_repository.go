package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByTelegramID returns the user with the given Telegram ID, or nil if no
// such user exists.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	query := r.db.Rebind("SELECT id, telegram_id, created_at FROM users WHERE telegram_id = ?")
	err := r.db.GetContext(ctx, &user, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetOrCreate returns the user with the given Telegram ID, registering them
// on first contact.
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64) (*models.User, error) {
	user, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	query := r.db.Rebind("INSERT INTO users (telegram_id) VALUES (?) ON CONFLICT (telegram_id) DO NOTHING")
	if _, err := r.db.ExecContext(ctx, query, telegramID); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Re-read so a concurrent insert still yields the winning row
	user, err = r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d missing after insert", telegramID)
	}
	return user, nil
}

// All returns every registered user, newest first.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, "SELECT id, telegram_id, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}
