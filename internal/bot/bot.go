package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/linguaflow/internal/achievements"
	"github.com/example/linguaflow/internal/config"
	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/logger"
	"github.com/example/linguaflow/internal/training"
)

// BotName is shown in the welcome message.
const BotName = "LinguaFlow"

// MenuButton represents a button in an inline menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// conversation holds the per-user dialogue state: the live training session
// handle and whether the bot is waiting for a typed word. Owned exclusively
// by the user's worker goroutine.
type conversation struct {
	session      *training.Session
	awaitingWord bool
}

// Bot is the Telegram transport over the training core.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	db        *sqlx.DB
	log       *logger.Logger
	trainer   *training.Trainer
	evaluator *achievements.Evaluator

	users      *database.UserRepository
	words      *database.WordRepository
	categories *database.CategoryRepository
	sessions   *database.SessionRepository
	mastery    *database.MasteryRepository

	admins map[int64]bool

	// one FIFO worker per chat keeps a single user's updates in order while
	// different users run concurrently
	mu      sync.Mutex
	workers map[int64]chan tgbotapi.Update
	wg      sync.WaitGroup
}

// New creates a bot instance over the given database connection.
func New(cfg *config.Config, db *sqlx.DB, log *logger.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	b := &Bot{
		api:        api,
		cfg:        cfg,
		db:         db,
		log:        log,
		trainer:    training.NewTrainer(db, log, cfg.StoreTimeout),
		evaluator:  achievements.NewEvaluator(db, log, cfg.StoreTimeout),
		users:      database.NewUserRepository(db),
		words:      database.NewWordRepository(db),
		categories: database.NewCategoryRepository(db),
		sessions:   database.NewSessionRepository(db),
		mastery:    database.NewMasteryRepository(db),
		admins:     make(map[int64]bool),
		workers:    make(map[int64]chan tgbotapi.Update),
	}

	for _, idStr := range strings.Split(cfg.AdminIDs, ",") {
		idStr = strings.TrimSpace(idStr)
		if idStr == "" {
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Warn("invalid admin user ID", "value", idStr)
			continue
		}
		b.admins[id] = true
	}

	return b, nil
}

// Start runs the long-poll loop until the context is canceled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

// Stop drains the per-chat workers.
func (b *Bot) Stop() {
	b.mu.Lock()
	for chatID, ch := range b.workers {
		close(ch)
		delete(b.workers, chatID)
	}
	b.mu.Unlock()
	b.wg.Wait()
	b.log.Info("bot stopped")
}

// dispatch routes an update to its chat's worker, creating one on first
// contact. Per-chat FIFO ordering is what makes the conversation state safe
// to mutate without locks inside handlers.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}

	b.mu.Lock()
	ch, ok := b.workers[chatID]
	if !ok {
		ch = make(chan tgbotapi.Update, 16)
		b.workers[chatID] = ch
		b.wg.Add(1)
		go b.worker(ctx, ch)
	}
	b.mu.Unlock()

	select {
	case ch <- update:
	default:
		// Slow consumer: dropping beats blocking the poll loop
		b.log.Warn("dropping update for busy chat", "chat_id", chatID)
	}
}

func (b *Bot) worker(ctx context.Context, updates <-chan tgbotapi.Update) {
	defer b.wg.Done()
	conv := &conversation{}
	for update := range updates {
		b.handleUpdate(ctx, conv, update)
	}
}

func (b *Bot) handleUpdate(ctx context.Context, conv *conversation, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic in update handler", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, conv, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, conv, update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, conv, update.Message)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

// send delivers a message, logging delivery failures instead of propagating
// them: a failed render must not poison the conversation state.
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error("failed to send message", "error", err)
	}
}

func (b *Bot) sendText(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	b.send(msg)
}

func (b *Bot) editText(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	b.send(msg)
}

// SendTrainingReminder implements the scheduler's notifier: a short nudge for
// users who have not trained today.
func (b *Bot) SendTrainingReminder(telegramID int64) error {
	msg := tgbotapi.NewMessage(telegramID,
		"👋 Вы сегодня ещё не тренировались!\n\nПара минут практики — и словарный запас растёт.")
	keyboard := createKeyboard([][]MenuButton{
		{{Text: "🎯 Начать тренировку", CallbackData: "training_start"}},
	})
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
