package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/pkg/models"
)

// ErrDuplicateWord is returned when a word already exists in the user's
// dictionary (unique english_word + user_id).
var ErrDuplicateWord = errors.New("word already exists in dictionary")

// WordRepository handles database operations for words
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

const wordColumns = `id, english_word, russian_translation, category_id,
	example_sentence, example_sentence_ru, user_id, is_public, created_at`

// SampleVisible returns up to limit random words visible to the user: the
// shared dictionary plus the user's own words. This is the candidate pool for
// question generation.
func (r *WordRepository) SampleVisible(ctx context.Context, telegramID int64, limit int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT %s FROM words
		WHERE user_id IS NULL OR user_id = ?
		ORDER BY RANDOM()
		LIMIT ?`, wordColumns))
	err := r.db.SelectContext(ctx, &words, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample words: %w", err)
	}
	return words, nil
}

// GetByID returns a word by ID, or nil if it doesn't exist. Accepts any
// queryer so it can run inside a transaction.
func (r *WordRepository) GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*models.Word, error) {
	var word models.Word
	query := q.Rebind(fmt.Sprintf("SELECT %s FROM words WHERE id = ?", wordColumns))
	err := sqlx.GetContext(ctx, q, &word, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &word, nil
}

// GetByUser returns the user's own words, alphabetically.
func (r *WordRepository) GetByUser(ctx context.Context, telegramID int64) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM words WHERE user_id = ? ORDER BY english_word", wordColumns))
	err := r.db.SelectContext(ctx, &words, query, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user words: %w", err)
	}
	return words, nil
}

// CountVisible returns how many words the user can train on.
func (r *WordRepository) CountVisible(ctx context.Context, telegramID int64) (int, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM words WHERE user_id IS NULL OR user_id = ?")
	if err := r.db.GetContext(ctx, &count, query, telegramID); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// CountOwned returns how many words the user has added themselves. Feeds the
// words_added achievement.
func (r *WordRepository) CountOwned(ctx context.Context, q sqlx.ExtContext, telegramID int64) (int, error) {
	var count int
	query := q.Rebind("SELECT COUNT(*) FROM words WHERE user_id = ?")
	if err := sqlx.GetContext(ctx, q, &count, query, telegramID); err != nil {
		return 0, fmt.Errorf("failed to count owned words: %w", err)
	}
	return count, nil
}

// Create inserts a new word and fills in its generated ID.
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	if r.db.DriverName() == "postgres" {
		query := `
			INSERT INTO words (english_word, russian_translation, category_id,
				example_sentence, example_sentence_ru, user_id, is_public)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (english_word, user_id) DO NOTHING
			RETURNING id`
		err := r.db.QueryRowxContext(ctx, query,
			word.EnglishWord,
			word.Translation,
			word.CategoryID,
			word.ExampleSentence,
			word.ExampleSentenceRu,
			word.UserID,
			word.IsPublic,
		).Scan(&word.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDuplicateWord
		}
		if err != nil {
			return fmt.Errorf("failed to create word: %w", err)
		}
		return nil
	}

	// SQLite path: detect the duplicate first, then plain insert
	var existing int
	err := r.db.GetContext(ctx, &existing,
		"SELECT COUNT(*) FROM words WHERE english_word = ? AND user_id IS ?",
		word.EnglishWord, word.UserID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate word: %w", err)
	}
	if existing > 0 {
		return ErrDuplicateWord
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO words (english_word, russian_translation, category_id,
			example_sentence, example_sentence_ru, user_id, is_public)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		word.EnglishWord,
		word.Translation,
		word.CategoryID,
		word.ExampleSentence,
		word.ExampleSentenceRu,
		word.UserID,
		word.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	word.ID = id
	return nil
}

// DeleteOwned removes one of the user's own words. Shared words and other
// users' words are not deletable through this path.
func (r *WordRepository) DeleteOwned(ctx context.Context, telegramID, wordID int64) (bool, error) {
	query := r.db.Rebind("DELETE FROM words WHERE id = ? AND user_id = ?")
	result, err := r.db.ExecContext(ctx, query, wordID, telegramID)
	if err != nil {
		return false, fmt.Errorf("failed to delete word: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// Search finds visible words matching the pattern in either language.
func (r *WordRepository) Search(ctx context.Context, telegramID int64, pattern string) ([]models.Word, error) {
	var words []models.Word
	like := "%" + pattern + "%"
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT %s FROM words
		WHERE (user_id IS NULL OR user_id = ?)
		  AND (LOWER(english_word) LIKE LOWER(?) OR LOWER(russian_translation) LIKE LOWER(?))
		ORDER BY english_word`, wordColumns))
	err := r.db.SelectContext(ctx, &words, query, telegramID, like, like)
	if err != nil {
		return nil, fmt.Errorf("failed to search words: %w", err)
	}
	return words, nil
}
