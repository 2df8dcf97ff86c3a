package training

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/logger"
	"github.com/example/linguaflow/pkg/models"
)

// SessionTypeMultipleChoice is the only quiz kind currently offered.
const SessionTypeMultipleChoice = "multiple_choice"

type sessionState int

const (
	stateDirectionPending sessionState = iota
	stateQuestionActive
	stateAnswerShown
	stateEnded
)

// Session is the caller-held handle for one quiz run. The handle carries the
// conversation-local view of the state machine; the authoritative scratch
// state (pending question, version) lives in the session row, so concurrent
// submissions are resolved by the store, not by this struct.
type Session struct {
	userID    int64
	id        int64
	direction Direction
	state     sessionState
}

// ID returns the persisted session ID, zero until a direction is chosen.
func (s *Session) ID() int64 { return s.id }

// UserID returns the owning user's Telegram ID.
func (s *Session) UserID() int64 { return s.userID }

// Direction returns the chosen translation direction.
func (s *Session) Direction() Direction { return s.direction }

// AnswerResult reports the outcome of one accepted answer.
type AnswerResult struct {
	Correct bool
	// Word is the word behind the correct option, for feedback text
	Word models.Word
	// MasteryLevel is the level after this answer was applied
	MasteryLevel int
}

// Summary is the final report of a training session.
type Summary struct {
	Total    int
	Correct  int
	Accuracy float64
}

// Trainer drives training sessions: it owns the quiz lifecycle from start to
// end and persists running totals through the store.
type Trainer struct {
	db       *sqlx.DB
	words    *database.WordRepository
	sessions *database.SessionRepository
	answers  *database.AnswerRepository
	mastery  *database.MasteryRepository
	log      *logger.Logger
	timeout  time.Duration
}

// NewTrainer creates a trainer over the given database connection.
func NewTrainer(db *sqlx.DB, log *logger.Logger, storeTimeout time.Duration) *Trainer {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &Trainer{
		db:       db,
		words:    database.NewWordRepository(db),
		sessions: database.NewSessionRepository(db),
		answers:  database.NewAnswerRepository(db),
		mastery:  database.NewMasteryRepository(db),
		log:      log,
		timeout:  storeTimeout,
	}
}

// Start opens a new session handle for the user. Nothing is persisted yet;
// the session row is created when a direction is chosen, so abandoning the
// direction menu leaves no zero-question rows behind.
func (t *Trainer) Start(userID int64) *Session {
	return &Session{userID: userID, state: stateDirectionPending}
}

// ChooseDirection fixes the translation direction, persists the session row
// with zero counters and generates the first question. A pool that is too
// small surfaces as ErrEmptyDictionary or ErrNotEnoughWords and leaves no
// session row behind; the user can retry after adding words.
func (t *Trainer) ChooseDirection(ctx context.Context, s *Session, direction Direction) (*Question, error) {
	if s.state == stateEnded {
		return nil, ErrSessionEnded
	}
	if s.state != stateDirectionPending || !direction.Valid() {
		return nil, ErrInvalidTransition
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	question, err := t.generate(ctx, s.userID, direction)
	if err != nil {
		return nil, err
	}

	row := &models.TrainingSession{
		UserID:      s.userID,
		SessionType: SessionTypeMultipleChoice,
		Direction:   string(direction),
	}
	if err := t.sessions.Create(ctx, row); err != nil {
		return nil, err
	}

	if _, err := t.sessions.SetPendingQuestion(ctx, row.ID, question.WordID, question.CorrectIndex); err != nil {
		return nil, err
	}

	s.id = row.ID
	s.direction = direction
	s.state = stateQuestionActive

	t.log.Info("training session started", "user_id", s.userID, "session_id", row.ID, "direction", direction)
	return question, nil
}

// SubmitAnswer applies the user's choice to the current question. Session
// counters, the answer record and the mastery update commit as one
// transaction; a stale submission (double-tap, replay, lost race) is rejected
// with ErrStaleQuestion and changes nothing.
func (t *Trainer) SubmitAnswer(ctx context.Context, s *Session, chosenIndex int) (*AnswerResult, error) {
	if s.state == stateEnded {
		return nil, ErrSessionEnded
	}
	if s.id == 0 {
		return nil, ErrNoSession
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var result AnswerResult
	err := database.WithTx(ctx, t.db, func(tx *sqlx.Tx) error {
		row, err := t.sessions.Get(ctx, tx, s.id)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrNoSession
		}
		if row.Ended() {
			return ErrSessionEnded
		}
		if !row.PendingWordID.Valid || !row.PendingCorrectIndex.Valid {
			return ErrStaleQuestion
		}

		isCorrect := int64(chosenIndex) == row.PendingCorrectIndex.Int64

		total := row.TotalQuestions + 1
		correct := row.CorrectAnswers
		if isCorrect {
			correct++
		}
		accuracy := float64(correct) / float64(total) * 100

		applied, err := t.sessions.ApplyAnswer(ctx, tx, s.id, row.QuestionSeq, total, correct, accuracy)
		if err != nil {
			return err
		}
		if !applied {
			return ErrStaleQuestion
		}

		wordID := row.PendingWordID.Int64
		answer := &models.Answer{
			SessionID:    s.id,
			UserID:       s.userID,
			WordID:       wordID,
			QuestionType: SessionTypeMultipleChoice,
			UserAnswer:   strconv.Itoa(chosenIndex),
			IsCorrect:    isCorrect,
		}
		if err := t.answers.Create(ctx, tx, answer); err != nil {
			return err
		}

		level, err := t.mastery.RecordOutcome(ctx, tx, s.userID, wordID, isCorrect)
		if err != nil {
			return err
		}

		word, err := t.words.GetByID(ctx, tx, wordID)
		if err != nil {
			return err
		}
		if word == nil {
			return ErrStaleQuestion
		}

		result = AnswerResult{Correct: isCorrect, Word: *word, MasteryLevel: level}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.state = stateAnswerShown

	t.log.Debug("answer accepted",
		"user_id", s.userID, "session_id", s.id,
		"word_id", result.Word.ID, "correct", result.Correct, "level", result.MasteryLevel)
	return &result, nil
}

// NextQuestion generates a fresh question with the same pool policy as
// ChooseDirection. The pool is re-read every time: words deleted mid-session
// shrink it, and the same insufficiency errors apply.
func (t *Trainer) NextQuestion(ctx context.Context, s *Session) (*Question, error) {
	if s.state == stateEnded {
		return nil, ErrSessionEnded
	}
	if s.id == 0 {
		return nil, ErrNoSession
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	question, err := t.generate(ctx, s.userID, s.direction)
	if err != nil {
		return nil, err
	}

	ok, err := t.sessions.SetPendingQuestion(ctx, s.id, question.WordID, question.CorrectIndex)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.state = stateEnded
		return nil, ErrSessionEnded
	}

	s.state = stateQuestionActive
	return question, nil
}

// End makes the session terminal and returns its summary. Safe to call
// repeatedly: a second End on the same session returns the identical summary,
// so transport retries never fail.
func (t *Trainer) End(ctx context.Context, s *Session) (*Summary, error) {
	if s.id == 0 {
		return nil, ErrNoSession
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.sessions.End(ctx, s.id); err != nil {
		return nil, err
	}
	row, err := t.sessions.Get(ctx, t.db, s.id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNoSession
	}

	s.state = stateEnded

	summary := &Summary{
		Total:    row.TotalQuestions,
		Correct:  row.CorrectAnswers,
		Accuracy: row.Accuracy,
	}
	t.log.Info("training session ended",
		"user_id", s.userID, "session_id", s.id,
		"total", summary.Total, "correct", summary.Correct, "accuracy", summary.Accuracy)
	return summary, nil
}

// generate samples the visible pool and builds one question.
func (t *Trainer) generate(ctx context.Context, userID int64, direction Direction) (*Question, error) {
	words, err := t.words.SampleVisible(ctx, userID, OptionCount)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return Generate(words, direction, rng)
}
