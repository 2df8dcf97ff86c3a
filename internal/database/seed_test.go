package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var categories, words, achievements int
	require.NoError(t, db.Get(&categories, "SELECT COUNT(*) FROM categories"))
	require.NoError(t, db.Get(&words, "SELECT COUNT(*) FROM words"))
	require.NoError(t, db.Get(&achievements, "SELECT COUNT(*) FROM achievements"))

	assert.Equal(t, len(seedCategories), categories)
	assert.Equal(t, len(seedWords), words)
	assert.Equal(t, len(seedAchievements), achievements)
}

func TestSeedWordsAreShared(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(context.Background(), db))

	var owned int
	require.NoError(t, db.Get(&owned, "SELECT COUNT(*) FROM words WHERE user_id IS NOT NULL"))
	assert.Zero(t, owned)

	// Any user can train on the stock dictionary right away
	words, err := NewWordRepository(db).SampleVisible(context.Background(), 12345, 4)
	require.NoError(t, err)
	assert.Len(t, words, 4)
}
