package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/linguaflow/pkg/models"
)

func createTestSession(t *testing.T, repo *SessionRepository, userID int64) *models.TrainingSession {
	t.Helper()
	session := &models.TrainingSession{
		UserID:      userID,
		SessionType: "multiple_choice",
		Direction:   "en_ru",
	}
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestApplyAnswerGuardedBySeq(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := createTestSession(t, repo, 1)

	ok, err := repo.SetPendingQuestion(ctx, session.ID, 42, 2)
	require.NoError(t, err)
	require.True(t, ok)

	row, err := repo.Get(ctx, db, session.ID)
	require.NoError(t, err)
	seq := row.QuestionSeq

	apply := func(seq int64) bool {
		var applied bool
		require.NoError(t, WithTx(ctx, db, func(tx *sqlx.Tx) error {
			var err error
			applied, err = repo.ApplyAnswer(ctx, tx, session.ID, seq, 1, 1, 100)
			return err
		}))
		return applied
	}

	assert.True(t, apply(seq))
	// Replaying the same seq loses the guard
	assert.False(t, apply(seq))

	row, err = repo.Get(ctx, db, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.TotalQuestions)
	assert.False(t, row.PendingWordID.Valid)
}

func TestSetPendingQuestionOnEndedSession(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := createTestSession(t, repo, 1)
	require.NoError(t, repo.End(ctx, session.ID))

	ok, err := repo.SetPendingQuestion(ctx, session.ID, 42, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	row, err := repo.Get(ctx, db, session.ID)
	require.NoError(t, err)
	assert.True(t, row.Ended())
}

func TestGetMissingSession(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	row, err := repo.Get(context.Background(), db, 9999)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestUserStatsAggregation(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	// Two finished sessions with known counters
	for _, c := range []struct {
		total, correct int
		accuracy       float64
	}{{10, 8, 80}, {10, 6, 60}} {
		session := createTestSession(t, repo, 1)
		_, err := db.Exec(
			"UPDATE training_sessions SET total_questions = ?, correct_answers = ?, accuracy = ? WHERE id = ?",
			c.total, c.correct, c.accuracy, session.ID)
		require.NoError(t, err)
		require.NoError(t, repo.End(ctx, session.ID))
	}

	stats, err := repo.GetUserStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 20, stats.TotalQuestions)
	assert.Equal(t, 14, stats.TotalCorrect)
	assert.InDelta(t, 70.0, stats.AvgAccuracy, 0.01)

	count, err := repo.CountForUser(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	today, err := repo.CountToday(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, today)

	latest, err := repo.Latest(ctx, db, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.InDelta(t, 60.0, latest.Accuracy, 0.01)
}
