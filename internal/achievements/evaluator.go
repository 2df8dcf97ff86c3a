package achievements

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/logger"
	"github.com/example/linguaflow/pkg/models"
)

// Evaluator checks the achievement catalogue against a user's accumulated
// statistics and records one-time unlocks. Aggregates are computed fresh on
// every call, and the unlock insert shares the transaction with the reads
// that justified it, so two concurrent evaluations can never both record the
// same unlock.
type Evaluator struct {
	db           *sqlx.DB
	achievements *database.AchievementRepository
	sessions     *database.SessionRepository
	words        *database.WordRepository
	mastery      *database.MasteryRepository
	log          *logger.Logger
	timeout      time.Duration
}

// NewEvaluator creates an evaluator over the given database connection.
func NewEvaluator(db *sqlx.DB, log *logger.Logger, storeTimeout time.Duration) *Evaluator {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &Evaluator{
		db:           db,
		achievements: database.NewAchievementRepository(db),
		sessions:     database.NewSessionRepository(db),
		words:        database.NewWordRepository(db),
		mastery:      database.NewMasteryRepository(db),
		log:          log,
		timeout:      storeTimeout,
	}
}

// Evaluate checks every not-yet-unlocked achievement for the user and
// returns the ones newly unlocked by this call. Idempotent: with no new
// progress the result is empty. Designed to run after every accepted answer
// and at session end.
func (e *Evaluator) Evaluate(ctx context.Context, userID int64) ([]models.Achievement, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var unlocked []models.Achievement
	err := database.WithTx(ctx, e.db, func(tx *sqlx.Tx) error {
		unlocked = unlocked[:0]

		catalogue, err := e.achievements.Catalogue(ctx, tx)
		if err != nil {
			return err
		}
		already, err := e.achievements.UnlockedIDs(ctx, tx, userID)
		if err != nil {
			return err
		}

		for _, achievement := range catalogue {
			if already[achievement.ID] {
				continue
			}

			satisfied, err := e.satisfied(ctx, tx, userID, achievement)
			if err != nil {
				return err
			}
			if !satisfied {
				continue
			}

			inserted, err := e.achievements.InsertUnlock(ctx, tx, userID, achievement.ID)
			if err != nil {
				return err
			}
			// Not inserted means a concurrent evaluation won the race;
			// the unlock exists either way.
			if inserted {
				unlocked = append(unlocked, achievement)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, a := range unlocked {
		e.log.Info("achievement unlocked", "user_id", userID, "achievement", a.Name)
	}
	return unlocked, nil
}

// Unlocked lists the achievements the user has already unlocked.
func (e *Evaluator) Unlocked(ctx context.Context, userID int64) ([]models.Achievement, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.achievements.Unlocked(ctx, userID)
}

// Catalogue returns all achievement definitions plus the user's unlocked set,
// for the achievements menu.
func (e *Evaluator) Catalogue(ctx context.Context, userID int64) ([]models.Achievement, map[int64]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	catalogue, err := e.achievements.Catalogue(ctx, e.db)
	if err != nil {
		return nil, nil, err
	}
	unlocked, err := e.achievements.UnlockedIDs(ctx, e.db, userID)
	if err != nil {
		return nil, nil, err
	}
	return catalogue, unlocked, nil
}

func (e *Evaluator) satisfied(ctx context.Context, tx *sqlx.Tx, userID int64, achievement models.Achievement) (bool, error) {
	condition := ParseCondition(achievement.Condition)

	switch condition.Kind {
	case KindFirstTraining:
		count, err := e.sessions.CountForUser(ctx, tx, userID)
		if err != nil {
			return false, err
		}
		return count > 0, nil

	case KindWordsAdded:
		count, err := e.words.CountOwned(ctx, tx, userID)
		if err != nil {
			return false, err
		}
		return count >= condition.Count, nil

	case KindAccuracy:
		latest, err := e.sessions.Latest(ctx, tx, userID)
		if err != nil {
			return false, err
		}
		return latest != nil && latest.Accuracy >= condition.Threshold, nil

	case KindWordsMastered:
		count, err := e.mastery.CountMastered(ctx, tx, userID, models.MasteredThreshold)
		if err != nil {
			return false, err
		}
		return count >= condition.Count, nil

	default:
		e.log.Debug("skipping achievement with unrecognized condition",
			"achievement", achievement.Name, "condition", achievement.Condition)
		return false, nil
	}
}
