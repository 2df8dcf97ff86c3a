package achievements

import "encoding/json"

// ConditionKind enumerates the unlock rule variants the evaluator knows.
type ConditionKind string

const (
	// KindFirstTraining unlocks once the user has started any training session
	KindFirstTraining ConditionKind = "first_training"
	// KindWordsAdded unlocks when the user has added Count own words
	KindWordsAdded ConditionKind = "words_added"
	// KindAccuracy unlocks when the latest session's accuracy reaches Threshold
	KindAccuracy ConditionKind = "accuracy"
	// KindWordsMastered unlocks when Count words reach the mastered level
	KindWordsMastered ConditionKind = "words_mastered"
	// KindUnrecognized covers every condition type the evaluator has no rule
	// for; it never unlocks
	KindUnrecognized ConditionKind = ""
)

// Condition is the parsed unlock rule of one achievement. The catalogue
// stores conditions as small JSON documents; anything that fails to parse or
// names an unknown type becomes KindUnrecognized so one bad row can never
// break evaluation of the rest.
type Condition struct {
	Kind      ConditionKind
	Count     int
	Threshold float64
}

type conditionPayload struct {
	Type      string   `json:"type"`
	Count     *int     `json:"count"`
	Threshold *float64 `json:"threshold"`
}

// Defaults applied when a payload names a type but omits its parameter,
// mirroring the catalogue's historical behavior.
const (
	defaultWordsAddedCount    = 10
	defaultAccuracyThreshold  = 90
	defaultWordsMasteredCount = 100
)

// ParseCondition decodes a raw condition document into its closed variant.
func ParseCondition(raw string) Condition {
	var payload conditionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Condition{Kind: KindUnrecognized}
	}

	switch ConditionKind(payload.Type) {
	case KindFirstTraining:
		return Condition{Kind: KindFirstTraining}
	case KindWordsAdded:
		count := defaultWordsAddedCount
		if payload.Count != nil {
			count = *payload.Count
		}
		return Condition{Kind: KindWordsAdded, Count: count}
	case KindAccuracy:
		threshold := float64(defaultAccuracyThreshold)
		if payload.Threshold != nil {
			threshold = *payload.Threshold
		}
		return Condition{Kind: KindAccuracy, Threshold: threshold}
	case KindWordsMastered:
		count := defaultWordsMasteredCount
		if payload.Count != nil {
			count = *payload.Count
		}
		return Condition{Kind: KindWordsMastered, Count: count}
	default:
		return Condition{Kind: KindUnrecognized}
	}
}
