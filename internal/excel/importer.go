package excel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"

	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/pkg/models"
)

// ImportConfig defines which columns hold which word fields.
type ImportConfig struct {
	FilePath          string
	WordColumn        string
	TranslationColumn string
	CategoryColumn    string
	ExampleColumn     string
	ExampleRuColumn   string
	SheetName         string
	StartRow          int // 1-based; rows above it are treated as headers
}

// DefaultImportConfig returns the column layout the stock workbooks use.
func DefaultImportConfig(filePath string) ImportConfig {
	return ImportConfig{
		FilePath:          filePath,
		WordColumn:        "A",
		TranslationColumn: "B",
		CategoryColumn:    "C",
		ExampleColumn:     "D",
		ExampleRuColumn:   "E",
		SheetName:         "Sheet1",
		StartRow:          2,
	}
}

// ImportResult holds the outcome of one import run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer loads shared dictionary words from Excel workbooks. Imported words
// carry no owner, so they become visible to every user.
type Importer struct {
	words      *database.WordRepository
	categories *database.CategoryRepository
}

// NewImporter creates an importer over the given database connection.
func NewImporter(db *sqlx.DB) *Importer {
	return &Importer{
		words:      database.NewWordRepository(db),
		categories: database.NewCategoryRepository(db),
	}
}

// ImportWords reads the workbook and inserts each row as a shared word.
// Duplicate words are counted as skipped, malformed rows are collected in
// Errors; neither aborts the run.
func (imp *Importer) ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}

	// Map category names to IDs once, filling in as new names appear
	existing, err := imp.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing categories: %w", err)
	}
	categoryIDs := make(map[string]int64, len(existing))
	for _, c := range existing {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		if err := imp.processRow(ctx, row, config, categoryIDs, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func (imp *Importer) processRow(ctx context.Context, row []string, config ImportConfig,
	categoryIDs map[string]int64, result *ImportResult) error {

	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	english := cell(config.WordColumn)
	translation := cell(config.TranslationColumn)
	categoryName := cell(config.CategoryColumn)
	example := cell(config.ExampleColumn)
	exampleRu := cell(config.ExampleRuColumn)

	if english == "" {
		return errors.New("word cannot be empty")
	}
	if translation == "" {
		return errors.New("translation cannot be empty")
	}

	categoryID, err := imp.categoryID(ctx, categoryName, categoryIDs)
	if err != nil {
		return err
	}

	word := &models.Word{
		EnglishWord: english,
		Translation: translation,
		CategoryID:  categoryID,
		IsPublic:    true,
	}
	if example != "" {
		word.ExampleSentence = sql.NullString{String: example, Valid: true}
	}
	if exampleRu != "" {
		word.ExampleSentenceRu = sql.NullString{String: exampleRu, Valid: true}
	}

	err = imp.words.Create(ctx, word)
	if errors.Is(err, database.ErrDuplicateWord) {
		result.Skipped++
		return nil
	}
	if err != nil {
		return err
	}
	result.Created++
	return nil
}

func (imp *Importer) categoryID(ctx context.Context, name string, categoryIDs map[string]int64) (int64, error) {
	if name == "" {
		category, err := imp.categories.Default(ctx)
		if err != nil {
			return 0, err
		}
		if category == nil {
			return 0, errors.New("no categories exist and none given")
		}
		return category.ID, nil
	}

	key := strings.ToLower(name)
	if id, ok := categoryIDs[key]; ok {
		return id, nil
	}
	category, err := imp.categories.GetOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	categoryIDs[key] = category.ID
	return category.ID, nil
}

func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
