package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/internal/config"
	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/logger"
)

// Notifier sends a training reminder to one user.
type Notifier interface {
	SendTrainingReminder(telegramID int64) error
}

// Scheduler runs the hourly reminder job: every registered user who has not
// trained today gets a nudge, but only inside the configured notification
// window so nobody is pinged at night.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cfg       *config.Config
	users     *database.UserRepository
	sessions  *database.SessionRepository
	notifier  Notifier
	log       *logger.Logger
}

// New creates a scheduler over the given database connection.
func New(cfg *config.Config, db *sqlx.DB, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		users:     database.NewUserRepository(db),
		sessions:  database.NewSessionRepository(db),
		notifier:  notifier,
		log:       log,
	}
}

// Start schedules the hourly check and runs it asynchronously.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("reminder scheduler started",
		"start_hour", s.cfg.NotificationStartHour, "end_hour", s.cfg.NotificationEndHour)
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().UTC().Hour()
	if currentHour < s.cfg.NotificationStartHour || currentHour > s.cfg.NotificationEndHour {
		s.log.Debug("outside notification hours, skipping reminders", "hour", currentHour)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.StoreTimeout)
	defer cancel()

	users, err := s.users.All(ctx)
	if err != nil {
		s.log.Error("failed to list users for reminders", "error", err)
		return
	}

	sent := 0
	for _, user := range users {
		count, err := s.sessions.CountToday(ctx, user.TelegramID)
		if err != nil {
			s.log.Error("failed to count today's sessions", "telegram_id", user.TelegramID, "error", err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.notifier.SendTrainingReminder(user.TelegramID); err != nil {
			// Blocked bots and deleted accounts land here; keep going
			s.log.Warn("failed to send reminder", "telegram_id", user.TelegramID, "error", err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Info("training reminders sent", "count", sent)
	}
}

// RunManualCheck sends a reminder to one user if they have not trained today.
func (s *Scheduler) RunManualCheck(ctx context.Context, telegramID int64) error {
	count, err := s.sessions.CountToday(ctx, telegramID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.notifier.SendTrainingReminder(telegramID)
}
