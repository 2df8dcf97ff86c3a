package achievements

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/logger"
	"github.com/example/linguaflow/pkg/models"
)

const testUserID int64 = 100500

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db))
	require.NoError(t, database.Seed(context.Background(), db))
	return db
}

func newTestEvaluator(db *sqlx.DB) *Evaluator {
	return NewEvaluator(db, logger.Nop(), 5*time.Second)
}

func insertSession(t *testing.T, db *sqlx.DB, userID int64, total, correct int, accuracy float64) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO training_sessions (user_id, session_type, direction, total_questions, correct_answers, accuracy, ended_at)
		VALUES (?, 'multiple_choice', 'en_ru', ?, ?, ?, CURRENT_TIMESTAMP)`,
		userID, total, correct, accuracy)
	require.NoError(t, err)
}

func insertOwnedWords(t *testing.T, db *sqlx.DB, userID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := db.Exec(`
			INSERT INTO words (english_word, russian_translation, category_id, user_id, is_public)
			VALUES (?, ?, 1, ?, FALSE)`,
			fmt.Sprintf("own%d", i), fmt.Sprintf("своё%d", i), userID)
		require.NoError(t, err)
	}
}

func insertMastered(t *testing.T, db *sqlx.DB, userID int64, n, level int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := db.Exec(
			"INSERT INTO statistics (user_id, word_id, mastered_level) VALUES (?, ?, ?)",
			userID, 1000+i, level)
		require.NoError(t, err)
	}
}

func names(achievements []models.Achievement) []string {
	out := make([]string, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, a.Name)
	}
	return out
}

func TestEvaluateFreshUser(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)

	unlocked, err := evaluator.Evaluate(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestEvaluateFirstTraining(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)
	ctx := context.Background()

	insertSession(t, db, testUserID, 5, 2, 40)

	unlocked, err := evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Первые шаги"}, names(unlocked))

	// No new progress means no new unlocks
	unlocked, err = evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestEvaluateWordsAdded(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)
	ctx := context.Background()

	insertOwnedWords(t, db, testUserID, 9)
	unlocked, err := evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	insertOwnedWords(t, db, testUserID+1, 10)
	unlocked, err = evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked, "other users' words must not count")

	_, err = db.Exec(`
		INSERT INTO words (english_word, russian_translation, category_id, user_id, is_public)
		VALUES ('tenth', 'десятое', 1, ?, FALSE)`, testUserID)
	require.NoError(t, err)

	unlocked, err = evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Словарный запас"}, names(unlocked))
}

func TestEvaluateAccuracy(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)
	ctx := context.Background()

	insertSession(t, db, testUserID, 10, 8, 80)
	unlocked, err := evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Первые шаги"}, names(unlocked))

	insertSession(t, db, testUserID, 10, 9, 90)
	unlocked, err = evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Мастер точности"}, names(unlocked))
}

func TestEvaluateWordsMastered(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)
	ctx := context.Background()

	insertMastered(t, db, testUserID, 99, models.MasteredThreshold)
	unlocked, err := evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	_, err = db.Exec(
		"INSERT INTO statistics (user_id, word_id, mastered_level) VALUES (?, ?, ?)",
		testUserID, 2000, models.MaxMasteryLevel)
	require.NoError(t, err)
	unlocked, err = evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Сто слов"}, names(unlocked))
}

func TestStreakStaysLocked(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)
	ctx := context.Background()

	// Satisfy every recognized condition at once
	insertSession(t, db, testUserID, 10, 10, 100)
	insertOwnedWords(t, db, testUserID, 10)
	insertMastered(t, db, testUserID, 100, models.MasteredThreshold)

	unlocked, err := evaluator.Evaluate(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, unlocked, 4)
	assert.NotContains(t, names(unlocked), "Неделя обучения")

	catalogue, unlockedIDs, err := evaluator.Catalogue(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, catalogue, 5)
	assert.Len(t, unlockedIDs, 4)
}

func TestEvaluateConcurrentSingleUnlock(t *testing.T) {
	db := openTestDB(t)
	evaluator := newTestEvaluator(db)
	ctx := context.Background()

	insertSession(t, db, testUserID, 5, 3, 60)

	var mu sync.Mutex
	var wg sync.WaitGroup
	totalNew := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlocked, err := evaluator.Evaluate(ctx, testUserID)
			assert.NoError(t, err)
			mu.Lock()
			totalNew += len(unlocked)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, totalNew)

	var rows int
	require.NoError(t, db.Get(&rows, "SELECT COUNT(*) FROM user_achievements WHERE user_id = ?", testUserID))
	assert.Equal(t, 1, rows)
}
