package training

import (
	"math/rand"

	"github.com/example/linguaflow/pkg/models"
)

// Direction selects which language is the prompt and which is the answer.
type Direction string

const (
	// DirectionEnRu shows the English word, the user picks the Russian translation
	DirectionEnRu Direction = "en_ru"
	// DirectionRuEn shows the Russian translation, the user picks the English word
	DirectionRuEn Direction = "ru_en"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionEnRu || d == DirectionRuEn
}

// OptionCount is the fixed number of choices shown per question.
const OptionCount = 4

// Question is one multiple-choice translation question.
type Question struct {
	// WordID identifies the word behind the correct option
	WordID int64
	// Prompt is the source-language text shown to the user
	Prompt string
	// Options always holds OptionCount entries; duplicates appear when the
	// pool is smaller than OptionCount
	Options []string
	// CorrectIndex is the zero-based position of the correct option
	CorrectIndex int
}

// Generate builds one question from a sampled word pool. The first
// constraint failures are user-actionable: an empty pool reports an empty
// dictionary, a single-word pool reports that two distinct words are needed.
// With 2 or 3 words the distractor list is padded by repetition so the layout
// stays a fixed four options.
//
// Pure function of its inputs and the rand source; no side effects.
func Generate(words []models.Word, direction Direction, rng *rand.Rand) (*Question, error) {
	distinct := distinctByID(words)
	if len(distinct) == 0 {
		return nil, ErrEmptyDictionary
	}
	if len(distinct) == 1 {
		return nil, ErrNotEnoughWords
	}

	pool := make([]models.Word, len(distinct))
	copy(pool, distinct)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	correct := pool[0]
	distractors := pool[1:]
	if len(distractors) > OptionCount-1 {
		distractors = distractors[:OptionCount-1]
	}
	// Pad with duplicates up to the fixed layout; only option positions
	// matter for correctness, not wording uniqueness.
	for len(distractors) < OptionCount-1 {
		distractors = append(distractors, distractors[0])
	}

	prompt, correctText := promptAndAnswer(correct, direction)

	options := make([]string, 0, OptionCount)
	for _, w := range distractors {
		_, text := promptAndAnswer(w, direction)
		options = append(options, text)
	}
	options = append(options, correctText)
	correctIndex := len(options) - 1

	rng.Shuffle(len(options), func(i, j int) {
		switch correctIndex {
		case i:
			correctIndex = j
		case j:
			correctIndex = i
		}
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		WordID:       correct.ID,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
	}, nil
}

func promptAndAnswer(w models.Word, direction Direction) (prompt, answer string) {
	if direction == DirectionRuEn {
		return w.Translation, w.EnglishWord
	}
	return w.EnglishWord, w.Translation
}

func distinctByID(words []models.Word) []models.Word {
	seen := make(map[int64]bool, len(words))
	out := words[:0:0]
	for _, w := range words {
		if !seen[w.ID] {
			seen[w.ID] = true
			out = append(out, w)
		}
	}
	return out
}
