package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// CategoryRepository handles database operations for word categories
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new repository instance
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll returns all categories.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, "SELECT id, category_name FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByName returns the category with the given name, or nil if absent.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	query := r.db.Rebind("SELECT id, category_name FROM categories WHERE category_name = ?")
	err := r.db.GetContext(ctx, &category, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetOrCreate returns the category with the given name, creating it if needed.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*models.Category, error) {
	category, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}

	query := r.db.Rebind("INSERT INTO categories (category_name) VALUES (?) ON CONFLICT (category_name) DO NOTHING")
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category, err = r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %q missing after insert", name)
	}
	return category, nil
}

// Default returns the category new user words fall into: the first available.
func (r *CategoryRepository) Default(ctx context.Context) (*models.Category, error) {
	var category models.Category
	err := r.db.GetContext(ctx, &category, "SELECT id, category_name FROM categories ORDER BY id LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default category: %w", err)
	}
	return &category, nil
}
