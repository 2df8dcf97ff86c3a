package training

import "errors"

// Sentinel errors for the training package.
// Use errors.Is to check: errors.Is(err, training.ErrStaleQuestion)
var (
	// ErrEmptyDictionary means the user has no visible words at all.
	ErrEmptyDictionary = errors.New("training: dictionary empty")
	// ErrNotEnoughWords means the pool has only one distinct word; a
	// multiple-choice question needs at least two.
	ErrNotEnoughWords = errors.New("training: need at least 2 distinct words")
	// ErrStaleQuestion means the submitted answer does not target the
	// session's current question (double-tap, replay, or a lost race).
	// Callers may ignore it silently; no counters changed.
	ErrStaleQuestion = errors.New("training: no active question for this answer")
	// ErrSessionEnded means a transition other than End was attempted on a
	// terminal session.
	ErrSessionEnded = errors.New("training: session already ended")
	// ErrNoSession means the handle has no persisted session yet; the caller
	// must choose a direction first.
	ErrNoSession = errors.New("training: no training session started")
	// ErrInvalidTransition means the requested transition is not legal from
	// the handle's current state.
	ErrInvalidTransition = errors.New("training: invalid session transition")
)
