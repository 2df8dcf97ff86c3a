package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/linguaflow/internal/config"
	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/training"
	"github.com/example/linguaflow/pkg/models"
)

const (
	callbackMainMenu         = "main_menu"
	callbackTrainingStart    = "training_start"
	callbackDirectionPrefix  = "training_direction_"
	callbackAnswerPrefix     = "answer_"
	callbackNextQuestion     = "next_question"
	callbackTrainingEnd      = "training_end"
	callbackDictionaryMenu   = "dictionary_menu"
	callbackDictionaryAdd    = "dictionary_add"
	callbackDictionaryWords  = "dictionary_my_words"
	callbackDeletePrefix     = "dictionary_delete_"
	callbackStatisticsMenu   = "statistics_menu"
	callbackAchievementsMenu = "achievements_menu"
)

func (b *Bot) handleCommand(ctx context.Context, conv *conversation, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(ctx, conv, message)
	case "help":
		b.handleHelp(message)
	case "stats":
		b.handleAdminStats(ctx, message)
	default:
		b.sendText(message.Chat.ID, "Неизвестная команда. Используйте /start", nil)
	}
}

func (b *Bot) handleStart(ctx context.Context, conv *conversation, message *tgbotapi.Message) {
	conv.awaitingWord = false

	if _, err := b.users.GetOrCreate(ctx, message.From.ID); err != nil {
		b.log.Error("failed to register user", "telegram_id", message.From.ID, "error", err)
		b.sendText(message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте еще раз.", nil)
		return
	}

	text := fmt.Sprintf(
		"👋 *Добро пожаловать в %s!*\n\n"+
			"✨ *Что я умею:*\n"+
			"• 📚 Тренировка со словами IT-тематики\n"+
			"• ➕ Добавление своих слов в личный словарь\n"+
			"• 📊 Отслеживание прогресса обучения\n"+
			"• 🎮 Интерактивные тренировки с вариантами ответов\n"+
			"• 🔄 Выбор направления перевода (RU→EN или EN→RU)\n\n"+
			"Выберите действие ниже!", BotName)

	keyboard := b.mainMenuKeyboard()
	b.sendText(message.Chat.ID, text, &keyboard)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := "📖 *Справка*\n\n" +
		"/start — главное меню\n" +
		"/help — эта справка\n\n" +
		"🎯 Тренировка: выберите направление перевода и отвечайте на вопросы.\n" +
		"📚 Словарь: добавляйте собственные слова, они попадут в ваши тренировки.\n" +
		"⭐ Достижения открываются по мере прогресса."
	keyboard := createKeyboard([][]MenuButton{
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	b.sendText(message.Chat.ID, text, &keyboard)
}

func (b *Bot) handleAdminStats(ctx context.Context, message *tgbotapi.Message) {
	if !b.admins[message.From.ID] {
		b.sendText(message.Chat.ID, "Неизвестная команда. Используйте /start", nil)
		return
	}

	users, err := b.users.All(ctx)
	if err != nil {
		b.log.Error("failed to list users", "error", err)
		b.sendText(message.Chat.ID, "❌ Произошла ошибка.", nil)
		return
	}

	var words int
	if err := b.db.GetContext(ctx, &words, "SELECT COUNT(*) FROM words"); err != nil {
		b.log.Error("failed to count words", "error", err)
		b.sendText(message.Chat.ID, "❌ Произошла ошибка.", nil)
		return
	}
	var sessions int
	if err := b.db.GetContext(ctx, &sessions, "SELECT COUNT(*) FROM training_sessions"); err != nil {
		b.log.Error("failed to count sessions", "error", err)
		b.sendText(message.Chat.ID, "❌ Произошла ошибка.", nil)
		return
	}

	text := fmt.Sprintf(
		"🛠 *Статистика бота*\n\n"+
			"• Пользователей: %d\n"+
			"• Слов в базе: %d\n"+
			"• Тренировок всего: %d", len(users), words, sessions)
	b.sendText(message.Chat.ID, text, nil)
}

func (b *Bot) mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return createKeyboard([][]MenuButton{
		{{Text: "🎯 Начать тренировку", CallbackData: callbackTrainingStart}},
		{{Text: "📚 Мой словарь", CallbackData: callbackDictionaryMenu}},
		{{Text: "📊 Моя статистика", CallbackData: callbackStatisticsMenu}},
		{{Text: "⭐ Достижения", CallbackData: callbackAchievementsMenu}},
	})
}

func (b *Bot) handleCallback(ctx context.Context, conv *conversation, query *tgbotapi.CallbackQuery) {
	// Ack immediately so the button stops spinning
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Debug("failed to ack callback", "error", err)
	}

	data := query.Data
	switch {
	case data == callbackMainMenu:
		b.showMainMenu(conv, query)
	case data == callbackTrainingStart:
		b.showDirectionMenu(conv, query)
	case strings.HasPrefix(data, callbackDirectionPrefix):
		b.handleDirection(ctx, conv, query)
	case strings.HasPrefix(data, callbackAnswerPrefix):
		b.handleAnswer(ctx, conv, query)
	case data == callbackNextQuestion:
		b.handleNextQuestion(ctx, conv, query)
	case data == callbackTrainingEnd:
		b.handleTrainingEnd(ctx, conv, query)
	case data == callbackDictionaryMenu:
		b.showDictionaryMenu(ctx, conv, query)
	case data == callbackDictionaryAdd:
		b.promptAddWord(conv, query)
	case data == callbackDictionaryWords:
		b.showMyWords(ctx, query)
	case strings.HasPrefix(data, callbackDeletePrefix):
		b.handleDeleteWord(ctx, query)
	case data == callbackStatisticsMenu:
		b.showStatistics(ctx, query)
	case data == callbackAchievementsMenu:
		b.showAchievements(ctx, query)
	default:
		b.log.Debug("unknown callback", "data", data)
	}
}

func (b *Bot) showMainMenu(conv *conversation, query *tgbotapi.CallbackQuery) {
	conv.awaitingWord = false
	keyboard := b.mainMenuKeyboard()
	b.editText(query.Message.Chat.ID, query.Message.MessageID, "Выберите действие:", &keyboard)
}

// --- training flow ---

func (b *Bot) showDirectionMenu(conv *conversation, query *tgbotapi.CallbackQuery) {
	conv.session = b.trainer.Start(query.From.ID)

	keyboard := createKeyboard([][]MenuButton{
		{
			{Text: "🇬🇧 → 🇷🇺 EN→RU", CallbackData: callbackDirectionPrefix + "en_ru"},
			{Text: "🇷🇺 → 🇬🇧 RU→EN", CallbackData: callbackDirectionPrefix + "ru_en"},
		},
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	text := "🎯 *Выберите направление перевода:*\n\n" +
		"• EN→RU: вам покажут английское слово, нужно выбрать русский перевод\n" +
		"• RU→EN: вам покажут русское слово, нужно выбрать английский перевод"
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

func (b *Bot) handleDirection(ctx context.Context, conv *conversation, query *tgbotapi.CallbackQuery) {
	direction := training.Direction(strings.TrimPrefix(query.Data, callbackDirectionPrefix))

	if conv.session == nil {
		conv.session = b.trainer.Start(query.From.ID)
	}

	question, err := b.trainer.ChooseDirection(ctx, conv.session, direction)
	if err != nil {
		conv.session = nil
		b.renderTrainingError(query, err)
		return
	}

	b.renderQuestion(query, conv.session.Direction(), question)
}

func (b *Bot) handleAnswer(ctx context.Context, conv *conversation, query *tgbotapi.CallbackQuery) {
	if conv.session == nil {
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"Ошибка: данные тренировки не найдены. Начните тренировку заново.", nil)
		return
	}

	chosenIndex, err := strconv.Atoi(strings.TrimPrefix(query.Data, callbackAnswerPrefix))
	if err != nil {
		b.log.Debug("malformed answer callback", "data", query.Data)
		return
	}

	result, err := b.trainer.SubmitAnswer(ctx, conv.session, chosenIndex)
	if errors.Is(err, training.ErrStaleQuestion) {
		// Double-tap or replay: already counted, nothing to do
		return
	}
	if err != nil {
		b.renderTrainingError(query, err)
		return
	}

	text := b.feedbackText(conv.session.Direction(), result)

	// Fresh aggregates after every answer; a failed evaluation must not
	// break the quiz flow
	if newly, err := b.evaluator.Evaluate(ctx, query.From.ID); err != nil {
		b.log.Error("achievement evaluation failed", "user_id", query.From.ID, "error", err)
	} else {
		for _, a := range newly {
			text += fmt.Sprintf("\n\n⭐ *Новое достижение:* %s %s", a.Icon, a.Name)
		}
	}

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "➡️ Следующий вопрос", CallbackData: callbackNextQuestion}},
		{{Text: "❌ Завершить тренировку", CallbackData: callbackTrainingEnd}},
	})
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

func (b *Bot) handleNextQuestion(ctx context.Context, conv *conversation, query *tgbotapi.CallbackQuery) {
	if conv.session == nil {
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"Ошибка: данные тренировки не найдены. Начните тренировку заново.", nil)
		return
	}

	question, err := b.trainer.NextQuestion(ctx, conv.session)
	if err != nil {
		b.renderTrainingError(query, err)
		return
	}
	b.renderQuestion(query, conv.session.Direction(), question)
}

func (b *Bot) handleTrainingEnd(ctx context.Context, conv *conversation, query *tgbotapi.CallbackQuery) {
	var text string
	if conv.session == nil {
		text = "Тренировка завершена."
	} else {
		summary, err := b.trainer.End(ctx, conv.session)
		switch {
		case errors.Is(err, training.ErrNoSession):
			text = "Тренировка завершена."
		case err != nil:
			b.renderTrainingError(query, err)
			return
		default:
			text = fmt.Sprintf(
				"🏁 *Тренировка завершена!*\n\n"+
					"📊 *Результаты:*\n"+
					"• Всего вопросов: %d\n"+
					"• Правильных ответов: %d\n"+
					"• Точность: %.1f%%", summary.Total, summary.Correct, summary.Accuracy)

			if newly, err := b.evaluator.Evaluate(ctx, query.From.ID); err != nil {
				b.log.Error("achievement evaluation failed", "user_id", query.From.ID, "error", err)
			} else {
				for _, a := range newly {
					text += fmt.Sprintf("\n\n⭐ *Новое достижение:* %s %s", a.Icon, a.Name)
				}
			}
		}
	}
	conv.session = nil

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "🎯 Начать новую тренировку", CallbackData: callbackTrainingStart}},
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

func (b *Bot) renderQuestion(query *tgbotapi.CallbackQuery, direction training.Direction, question *training.Question) {
	flag := "🇬🇧"
	if direction == training.DirectionRuEn {
		flag = "🇷🇺"
	}
	text := fmt.Sprintf("%s *Переведите слово:*\n\n*%s*\n\nВыберите правильный вариант:", flag, question.Prompt)

	rows := make([][]MenuButton, 0, len(question.Options)+1)
	for i, option := range question.Options {
		rows = append(rows, []MenuButton{{
			Text:         fmt.Sprintf("%c. %s", 'A'+i, option),
			CallbackData: fmt.Sprintf("%s%d", callbackAnswerPrefix, i),
		}})
	}
	rows = append(rows, []MenuButton{{Text: "❌ Завершить тренировку", CallbackData: callbackTrainingEnd}})

	keyboard := createKeyboard(rows)
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

func (b *Bot) feedbackText(direction training.Direction, result *training.AnswerResult) string {
	word := result.Word
	pair := fmt.Sprintf("*%s* = %s", word.EnglishWord, word.Translation)
	if direction == training.DirectionRuEn {
		pair = fmt.Sprintf("*%s* = %s", word.Translation, word.EnglishWord)
	}

	var text string
	if result.Correct {
		text = "✅ *Правильно!*\n\n" + pair
	} else {
		text = "❌ *Неправильно*\n\nПравильный ответ: " + pair
	}

	if word.ExampleSentence.Valid && word.ExampleSentence.String != "" {
		text += "\n\n💡 *Пример:*\n🇬🇧 " + word.ExampleSentence.String
		if word.ExampleSentenceRu.Valid && word.ExampleSentenceRu.String != "" {
			text += "\n🇷🇺 " + word.ExampleSentenceRu.String
		}
	}

	text += fmt.Sprintf("\n\n📈 Уровень освоения: %d/%d", result.MasteryLevel, models.MaxMasteryLevel)
	return text
}

func (b *Bot) renderTrainingError(query *tgbotapi.CallbackQuery, err error) {
	backKeyboard := createKeyboard([][]MenuButton{
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})

	var text string
	switch {
	case errors.Is(err, training.ErrEmptyDictionary):
		text = "📚 *Словарь пуст*\n\nДобавьте слова в словарь, чтобы начать тренировку!"
	case errors.Is(err, training.ErrNotEnoughWords):
		text = "📚 *Мало слов для тренировки*\n\nДобавьте ещё слова (нужно минимум 2 разных)."
	case errors.Is(err, training.ErrSessionEnded), errors.Is(err, training.ErrNoSession):
		text = "Тренировка уже завершена. Начните новую!"
	default:
		b.log.Error("training transition failed", "error", err)
		text = "❌ Произошла ошибка. Попробуйте еще раз."
	}
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &backKeyboard)
}

// --- dictionary ---

func (b *Bot) showDictionaryMenu(ctx context.Context, conv *conversation, query *tgbotapi.CallbackQuery) {
	conv.awaitingWord = false

	total, err := b.words.CountVisible(ctx, query.From.ID)
	if err != nil {
		b.log.Error("failed to count words", "error", err)
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"❌ Произошла ошибка при загрузке словаря.", nil)
		return
	}

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "➕ Добавить слово", CallbackData: callbackDictionaryAdd}},
		{{Text: "📋 Мои слова", CallbackData: callbackDictionaryWords}},
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	text := fmt.Sprintf("📚 *Мой словарь*\n\nВсего слов: %d\n\nВыберите действие:", total)
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

func (b *Bot) promptAddWord(conv *conversation, query *tgbotapi.CallbackQuery) {
	conv.awaitingWord = true

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "❌ Отмена", CallbackData: callbackDictionaryMenu}},
	})
	text := "➕ *Добавление слова*\n\n" +
		"Отправьте слово в формате:\n" +
		"`слово - перевод`\n" +
		"или с примером:\n" +
		"`слово - перевод - пример предложения`"
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

func (b *Bot) handleMessage(ctx context.Context, conv *conversation, message *tgbotapi.Message) {
	if !conv.awaitingWord {
		b.sendText(message.Chat.ID, "Используйте /start, чтобы открыть меню.", nil)
		return
	}
	conv.awaitingWord = false
	b.saveNewWord(ctx, message)
}

func (b *Bot) saveNewWord(ctx context.Context, message *tgbotapi.Message) {
	backKeyboard := createKeyboard([][]MenuButton{
		{{Text: "📚 Мой словарь", CallbackData: callbackDictionaryMenu}},
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})

	parts := strings.SplitN(message.Text, "-", 3)
	if len(parts) < 2 {
		b.sendText(message.Chat.ID,
			"❌ Неверный формат. Отправьте: `слово - перевод`", &backKeyboard)
		return
	}

	english := strings.TrimSpace(parts[0])
	translation := strings.TrimSpace(parts[1])
	example := ""
	if len(parts) == 3 {
		example = strings.TrimSpace(parts[2])
	}

	switch {
	case english == "" || translation == "":
		b.sendText(message.Chat.ID, "❌ Слово и перевод не могут быть пустыми.", &backKeyboard)
		return
	case len(english) > config.MaxWordLength:
		b.sendText(message.Chat.ID, "❌ Слово слишком длинное.", &backKeyboard)
		return
	case len(translation) > config.MaxTranslationLength:
		b.sendText(message.Chat.ID, "❌ Перевод слишком длинный.", &backKeyboard)
		return
	case len(example) > config.MaxExampleLength:
		b.sendText(message.Chat.ID, "❌ Пример слишком длинный.", &backKeyboard)
		return
	}

	category, err := b.categories.Default(ctx)
	if err != nil || category == nil {
		b.log.Error("failed to get default category", "error", err)
		b.sendText(message.Chat.ID, "❌ Произошла ошибка при сохранении слова.", &backKeyboard)
		return
	}

	word := &models.Word{
		EnglishWord: english,
		Translation: translation,
		CategoryID:  category.ID,
		UserID:      sql.NullInt64{Int64: message.From.ID, Valid: true},
		IsPublic:    false,
	}
	if example != "" {
		word.ExampleSentence = sql.NullString{String: example, Valid: true}
	}

	if err := b.words.Create(ctx, word); err != nil {
		if errors.Is(err, database.ErrDuplicateWord) {
			b.sendText(message.Chat.ID, "❌ Это слово уже есть в вашем словаре.", &backKeyboard)
			return
		}
		b.log.Error("failed to create word", "error", err)
		b.sendText(message.Chat.ID, "❌ Произошла ошибка при сохранении слова.", &backKeyboard)
		return
	}

	text := fmt.Sprintf("✅ Слово добавлено:\n\n*%s* = %s", english, translation)

	// words_added can unlock right here
	if newly, err := b.evaluator.Evaluate(ctx, message.From.ID); err != nil {
		b.log.Error("achievement evaluation failed", "user_id", message.From.ID, "error", err)
	} else {
		for _, a := range newly {
			text += fmt.Sprintf("\n\n⭐ *Новое достижение:* %s %s", a.Icon, a.Name)
		}
	}

	b.sendText(message.Chat.ID, text, &backKeyboard)
}

func (b *Bot) showMyWords(ctx context.Context, query *tgbotapi.CallbackQuery) {
	words, err := b.words.GetByUser(ctx, query.From.ID)
	if err != nil {
		b.log.Error("failed to list user words", "error", err)
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"❌ Произошла ошибка при загрузке слов.", nil)
		return
	}

	if len(words) == 0 {
		keyboard := createKeyboard([][]MenuButton{
			{{Text: "➕ Добавить слово", CallbackData: callbackDictionaryAdd}},
			{{Text: "🔙 Назад", CallbackData: callbackDictionaryMenu}},
		})
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"📋 У вас пока нет собственных слов.", &keyboard)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 *Мои слова:*\n\n")
	rows := make([][]MenuButton, 0, len(words)+1)
	for _, w := range words {
		sb.WriteString(fmt.Sprintf("• *%s* = %s\n", w.EnglishWord, w.Translation))
		rows = append(rows, []MenuButton{{
			Text:         "🗑 " + w.EnglishWord,
			CallbackData: fmt.Sprintf("%s%d", callbackDeletePrefix, w.ID),
		}})
	}
	rows = append(rows, []MenuButton{{Text: "🔙 Назад", CallbackData: callbackDictionaryMenu}})

	keyboard := createKeyboard(rows)
	b.editText(query.Message.Chat.ID, query.Message.MessageID, sb.String(), &keyboard)
}

func (b *Bot) handleDeleteWord(ctx context.Context, query *tgbotapi.CallbackQuery) {
	wordID, err := strconv.ParseInt(strings.TrimPrefix(query.Data, callbackDeletePrefix), 10, 64)
	if err != nil {
		return
	}

	deleted, err := b.words.DeleteOwned(ctx, query.From.ID, wordID)
	if err != nil {
		b.log.Error("failed to delete word", "error", err)
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"❌ Произошла ошибка при удалении слова.", nil)
		return
	}

	text := "🗑 Слово удалено."
	if !deleted {
		text = "Слово не найдено или не принадлежит вам."
	}
	keyboard := createKeyboard([][]MenuButton{
		{{Text: "📋 Мои слова", CallbackData: callbackDictionaryWords}},
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

// --- statistics ---

func (b *Bot) showStatistics(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	stats, err := b.sessions.GetUserStats(ctx, userID)
	if err != nil {
		b.log.Error("failed to load statistics", "error", err)
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"❌ Произошла ошибка при загрузке статистики.", nil)
		return
	}

	studied, err := b.mastery.CountStudied(ctx, userID)
	if err != nil {
		b.log.Error("failed to count studied words", "error", err)
		studied = 0
	}
	mastered, err := b.mastery.CountMastered(ctx, b.db, userID, models.MasteredThreshold)
	if err != nil {
		b.log.Error("failed to count mastered words", "error", err)
		mastered = 0
	}
	today, err := b.sessions.CountToday(ctx, userID)
	if err != nil {
		b.log.Error("failed to count today's sessions", "error", err)
		today = 0
	}

	text := fmt.Sprintf(
		"📊 *Моя статистика*\n\n"+
			"🎯 *Общая статистика:*\n"+
			"• Тренировок пройдено: %d\n"+
			"• Всего вопросов: %d\n"+
			"• Правильных ответов: %d\n"+
			"• Средняя точность: %.1f%%\n\n"+
			"📚 *Словарь:*\n"+
			"• Изучено слов: %d\n"+
			"• Освоено слов (уровень %d+): %d\n\n"+
			"📅 Тренировок сегодня: %d",
		stats.TotalSessions, stats.TotalQuestions, stats.TotalCorrect, stats.AvgAccuracy,
		studied, models.MasteredThreshold, mastered, today)

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	b.editText(query.Message.Chat.ID, query.Message.MessageID, text, &keyboard)
}

// --- achievements ---

func (b *Bot) showAchievements(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	// Catch up on anything earned outside the quiz flow before rendering
	if _, err := b.evaluator.Evaluate(ctx, userID); err != nil {
		b.log.Error("achievement evaluation failed", "user_id", userID, "error", err)
	}

	catalogue, unlocked, err := b.evaluator.Catalogue(ctx, userID)
	if err != nil {
		b.log.Error("failed to load achievements", "error", err)
		b.editText(query.Message.Chat.ID, query.Message.MessageID,
			"❌ Произошла ошибка при загрузке достижений.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("⭐ *Достижения*\n\n")
	sb.WriteString(fmt.Sprintf("Разблокировано: %d/%d\n\n", len(unlocked), len(catalogue)))
	for _, a := range catalogue {
		mark := "🔒"
		if unlocked[a.ID] {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%s %s *%s*\n   %s\n\n", mark, a.Icon, a.Name, a.Description))
	}

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "🔙 Главное меню", CallbackData: callbackMainMenu}},
	})
	b.editText(query.Message.Chat.ID, query.Message.MessageID, sb.String(), &keyboard)
}
