package training

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/logger"
)

const testUserID int64 = 100500

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db))
	return db
}

func seedTestWords(t *testing.T, db *sqlx.DB, n int) {
	t.Helper()
	_, err := db.Exec("INSERT INTO categories (category_name) VALUES ('Test')")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := db.Exec(`
			INSERT INTO words (english_word, russian_translation, category_id, is_public)
			VALUES (?, ?, 1, TRUE)`,
			fmt.Sprintf("word%d", i), fmt.Sprintf("слово%d", i))
		require.NoError(t, err)
	}
}

func newTestTrainer(db *sqlx.DB) *Trainer {
	return NewTrainer(db, logger.Nop(), 5*time.Second)
}

func TestChooseDirectionEmptyDictionary(t *testing.T) {
	db := openTestDB(t)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	_, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	// A failed start must not leave a session row behind
	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM training_sessions"))
	assert.Zero(t, count)
}

func TestChooseDirectionOneWord(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 1)
	trainer := newTestTrainer(db)

	s := trainer.Start(testUserID)
	_, err := trainer.ChooseDirection(context.Background(), s, DirectionEnRu)
	assert.ErrorIs(t, err, ErrNotEnoughWords)
}

func TestChooseDirectionInvalid(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 5)
	trainer := newTestTrainer(db)

	s := trainer.Start(testUserID)
	_, err := trainer.ChooseDirection(context.Background(), s, Direction("sideways"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTrainingFlow(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 5)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	question, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	require.NoError(t, err)
	require.NotZero(t, s.ID())
	require.Len(t, question.Options, OptionCount)

	// 5 questions: 3 answered correctly, 2 wrong
	outcomes := []bool{true, false, true, true, false}
	for i, wantCorrect := range outcomes {
		if i > 0 {
			question, err = trainer.NextQuestion(ctx, s)
			require.NoError(t, err)
		}

		chosen := question.CorrectIndex
		if !wantCorrect {
			chosen = (question.CorrectIndex + 1) % OptionCount
		}

		result, err := trainer.SubmitAnswer(ctx, s, chosen)
		require.NoError(t, err)
		assert.Equal(t, wantCorrect, result.Correct)
		assert.Equal(t, question.WordID, result.Word.ID)
	}

	summary, err := trainer.End(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Correct)
	assert.InDelta(t, 60.0, summary.Accuracy, 0.01)

	// One answer row per accepted submission
	var answers int
	require.NoError(t, db.Get(&answers, "SELECT COUNT(*) FROM answers WHERE session_id = ?", s.ID()))
	assert.Equal(t, 5, answers)
}

func TestSubmitAnswerStale(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 5)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	question, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	require.NoError(t, err)

	_, err = trainer.SubmitAnswer(ctx, s, question.CorrectIndex)
	require.NoError(t, err)

	// A double-tap replays the same submission; nothing may change
	_, err = trainer.SubmitAnswer(ctx, s, question.CorrectIndex)
	assert.ErrorIs(t, err, ErrStaleQuestion)

	row, err := database.NewSessionRepository(db).Get(ctx, db, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, row.TotalQuestions)
	assert.Equal(t, 1, row.CorrectAnswers)

	var answers int
	require.NoError(t, db.Get(&answers, "SELECT COUNT(*) FROM answers WHERE session_id = ?", s.ID()))
	assert.Equal(t, 1, answers)
}

func TestEndIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 5)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	question, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	require.NoError(t, err)
	_, err = trainer.SubmitAnswer(ctx, s, question.CorrectIndex)
	require.NoError(t, err)

	first, err := trainer.End(ctx, s)
	require.NoError(t, err)
	second, err := trainer.End(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEndWithZeroQuestions(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 5)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	_, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	require.NoError(t, err)

	// Ending before answering anything is a valid, empty session
	summary, err := trainer.End(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Correct)
	assert.Zero(t, summary.Accuracy)
}

func TestEndedSessionRejectsFurtherPlay(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 5)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	_, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	require.NoError(t, err)
	_, err = trainer.End(ctx, s)
	require.NoError(t, err)

	_, err = trainer.NextQuestion(ctx, s)
	assert.ErrorIs(t, err, ErrSessionEnded)
	_, err = trainer.SubmitAnswer(ctx, s, 0)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestSubmitAnswerWithoutSession(t *testing.T) {
	db := openTestDB(t)
	trainer := newTestTrainer(db)

	s := trainer.Start(testUserID)
	_, err := trainer.SubmitAnswer(context.Background(), s, 0)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMasteryFollowsAnswers(t *testing.T) {
	db := openTestDB(t)
	seedTestWords(t, db, 2)
	trainer := newTestTrainer(db)
	ctx := context.Background()

	s := trainer.Start(testUserID)
	question, err := trainer.ChooseDirection(ctx, s, DirectionEnRu)
	require.NoError(t, err)

	// Wrong answer on first contact clamps at the floor
	result, err := trainer.SubmitAnswer(ctx, s, (question.CorrectIndex+1)%OptionCount)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.MasteryLevel)

	// Correct answers raise the level one step at a time
	levels := make(map[int64]int)
	for i := 0; i < 6; i++ {
		question, err = trainer.NextQuestion(ctx, s)
		require.NoError(t, err)
		result, err = trainer.SubmitAnswer(ctx, s, question.CorrectIndex)
		require.NoError(t, err)
		levels[question.WordID] = result.MasteryLevel
		assert.LessOrEqual(t, result.MasteryLevel, 5)
	}
	for _, level := range levels {
		assert.GreaterOrEqual(t, level, 1)
	}
}
