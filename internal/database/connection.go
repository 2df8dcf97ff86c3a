package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/linguaflow/internal/config"
)

// Connect opens the database described by cfg and initializes the schema.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.DBType {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	default:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema creates the tables if they don't exist. The DDL below is the
// common subset accepted by both SQLite and PostgreSQL.
func InitSchema(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				telegram_id BIGINT UNIQUE NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS categories (
				id %s,
				category_name VARCHAR(255) NOT NULL UNIQUE
			)`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				english_word VARCHAR(255) NOT NULL,
				russian_translation VARCHAR(500) NOT NULL,
				category_id BIGINT NOT NULL REFERENCES categories(id),
				example_sentence TEXT,
				example_sentence_ru TEXT,
				user_id BIGINT,
				is_public BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE (english_word, user_id)
			)`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS training_sessions (
				id %s,
				user_id BIGINT NOT NULL,
				session_type VARCHAR(50) NOT NULL,
				direction VARCHAR(10) NOT NULL,
				total_questions INTEGER NOT NULL DEFAULT 0,
				correct_answers INTEGER NOT NULL DEFAULT 0,
				accuracy REAL NOT NULL DEFAULT 0,
				pending_word_id BIGINT,
				pending_correct_index INTEGER,
				question_seq BIGINT NOT NULL DEFAULT 0,
				ended_at TIMESTAMP,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS answers (
				id %s,
				session_id BIGINT NOT NULL REFERENCES training_sessions(id),
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL,
				question_type VARCHAR(50) NOT NULL,
				user_answer VARCHAR(255),
				is_correct BOOLEAN NOT NULL,
				answered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, serial),
		`
			CREATE TABLE IF NOT EXISTS statistics (
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL,
				mastered_level INTEGER NOT NULL DEFAULT 0,
				next_review TIMESTAMP,
				PRIMARY KEY (user_id, word_id)
			)`,
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS achievements (
				id %s,
				name VARCHAR(255) NOT NULL UNIQUE,
				description TEXT,
				icon VARCHAR(50),
				condition TEXT NOT NULL
			)`, serial),
		`
			CREATE TABLE IF NOT EXISTS user_achievements (
				user_id BIGINT NOT NULL,
				achievement_id BIGINT NOT NULL,
				unlocked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				progress TEXT,
				PRIMARY KEY (user_id, achievement_id)
			)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_created ON training_sessions(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_words_user ON words(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}
