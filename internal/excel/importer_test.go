package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/linguaflow/internal/database"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db))
	return db
}

func writeTestWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"English", "Russian", "Category", "Example", "Example RU"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWords(t *testing.T) {
	db := openTestDB(t)
	importer := NewImporter(db)
	ctx := context.Background()

	path := writeTestWorkbook(t, [][]interface{}{
		{"Framework", "Фреймворк", "Разработка", "Django is a framework.", "Django — это фреймворк."},
		{"Query", "Запрос", "Базы данных", "", ""},
		{"Index", "Индекс", "Базы данных", "Add an index.", ""},
	})

	result, err := importer.ImportWords(ctx, DefaultImportConfig(path))
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 3, result.Created)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)

	// Imported words are shared and visible to everyone
	words, err := database.NewWordRepository(db).SampleVisible(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, words, 3)
	for _, w := range words {
		assert.True(t, w.Shared())
	}

	var categories int
	require.NoError(t, db.Get(&categories, "SELECT COUNT(*) FROM categories"))
	assert.Equal(t, 2, categories)
}

func TestImportSkipsDuplicates(t *testing.T) {
	db := openTestDB(t)
	importer := NewImporter(db)
	ctx := context.Background()

	path := writeTestWorkbook(t, [][]interface{}{
		{"Framework", "Фреймворк", "Разработка", "", ""},
	})

	result, err := importer.ImportWords(ctx, DefaultImportConfig(path))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	// Re-running the same file changes nothing
	result, err = importer.ImportWords(ctx, DefaultImportConfig(path))
	require.NoError(t, err)
	assert.Zero(t, result.Created)
	assert.Equal(t, 1, result.Skipped)

	var words int
	require.NoError(t, db.Get(&words, "SELECT COUNT(*) FROM words"))
	assert.Equal(t, 1, words)
}

func TestImportCollectsRowErrors(t *testing.T) {
	db := openTestDB(t)
	importer := NewImporter(db)
	ctx := context.Background()

	path := writeTestWorkbook(t, [][]interface{}{
		{"Framework", "Фреймворк", "Разработка", "", ""},
		{"", "Перевод без слова", "Разработка", "", ""},
		{"Orphan", "", "Разработка", "", ""},
	})

	result, err := importer.ImportWords(ctx, DefaultImportConfig(path))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Errors, 2)
}
