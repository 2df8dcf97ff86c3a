package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Condition
	}{
		{"first training", `{"type": "first_training"}`,
			Condition{Kind: KindFirstTraining}},
		{"words added", `{"type": "words_added", "count": 10}`,
			Condition{Kind: KindWordsAdded, Count: 10}},
		{"words added default", `{"type": "words_added"}`,
			Condition{Kind: KindWordsAdded, Count: 10}},
		{"accuracy", `{"type": "accuracy", "threshold": 90}`,
			Condition{Kind: KindAccuracy, Threshold: 90}},
		{"accuracy default", `{"type": "accuracy"}`,
			Condition{Kind: KindAccuracy, Threshold: 90}},
		{"words mastered", `{"type": "words_mastered", "count": 100}`,
			Condition{Kind: KindWordsMastered, Count: 100}},
		{"unknown type", `{"type": "streak", "days": 7}`,
			Condition{Kind: KindUnrecognized}},
		{"empty type", `{}`,
			Condition{Kind: KindUnrecognized}},
		{"malformed json", `not json`,
			Condition{Kind: KindUnrecognized}},
		{"empty string", ``,
			Condition{Kind: KindUnrecognized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCondition(tt.raw))
		})
	}
}
