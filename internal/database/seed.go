package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type seedWord struct {
	English   string
	Russian   string
	Category  string
	Example   string
	ExampleRu string
}

type seedAchievement struct {
	Name        string
	Description string
	Icon        string
	Condition   string
}

var seedCategories = []string{
	"Разработка ПО (Software Development)",
	"Базы данных (Databases)",
	"Искусственный интеллект (Artificial Intelligence)",
}

var seedWords = []seedWord{
	{"Framework", "Фреймворк", "Разработка ПО (Software Development)",
		"Django is a popular Python framework for web development.",
		"Django — популярный фреймворк на Python для веб-разработки."},
	{"Repository", "Репозиторий", "Разработка ПО (Software Development)",
		"The team stores all project code in a Git repository.",
		"Команда хранит весь код проекта в Git репозитории."},
	{"Debugging", "Отладка", "Разработка ПО (Software Development)",
		"Debugging this complex algorithm took several hours.",
		"Отладка этого сложного алгоритма заняла несколько часов."},
	{"Deployment", "Развёртывание", "Разработка ПО (Software Development)",
		"The deployment of the new application version is scheduled for Friday.",
		"Развёртывание новой версии приложения запланировано на пятницу."},
	{"Agile", "Гибкая методология разработки", "Разработка ПО (Software Development)",
		"Our team follows Agile principles and works in two-week sprints.",
		"Наша команда следует принципам гибкой методологии и работает двухнедельными спринтами."},
	{"Refactoring", "Рефакторинг", "Разработка ПО (Software Development)",
		"Before adding new features, we need to do some refactoring of the old module.",
		"Прежде чем добавлять новые функции, нам нужно провести рефакторинг старого модуля."},
	{"API", "Интерфейс программирования приложений", "Разработка ПО (Software Development)",
		"Our service provides a public API for third-party developers.",
		"Наш сервис предоставляет публичный API для сторонних разработчиков."},
	{"Commit", "Коммит", "Разработка ПО (Software Development)",
		"Every commit should have a clear message describing the changes.",
		"Каждый коммит должен содержать понятное сообщение, описывающее изменения."},
	{"Scalability", "Масштабируемость", "Разработка ПО (Software Development)",
		"When designing the architecture, we prioritize scalability to handle future growth.",
		"При проектировании архитектуры мы уделяем приоритетное внимание масштабируемости."},
	{"Syntax", "Синтаксис", "Разработка ПО (Software Development)",
		"A missing bracket is a common syntax error in many programming languages.",
		"Пропущенная скобка — это распространенная синтаксическая ошибка во многих языках программирования."},
	{"Query", "Запрос", "Базы данных (Databases)",
		"This SQL query retrieves all users registered last month.",
		"Этот SQL запрос выбирает всех пользователей, зарегистрированных в прошлом месяце."},
	{"Index", "Индекс", "Базы данных (Databases)",
		"Adding an index to the 'email' column significantly improved search performance.",
		"Добавление индекса к столбцу 'email' значительно улучшило скорость поиска."},
	{"Transaction", "Транзакция", "Базы данных (Databases)",
		"The money transfer is processed within a single database transaction.",
		"Перевод денег обрабатывается в рамках одной транзакции базы данных."},
	{"Replication", "Репликация", "Базы данных (Databases)",
		"Replication ensures high availability and fault tolerance of the database.",
		"Репликация обеспечивает высокую доступность и отказоустойчивость базы данных."},
	{"NoSQL", "Нереляционная база данных", "Базы данных (Databases)",
		"For storing unstructured JSON data, we chose a NoSQL database like MongoDB.",
		"Для хранения неструктурированных JSON-данных мы выбрали NoSQL базу данных."},
	{"Normalization", "Нормализация", "Базы данных (Databases)",
		"Normalization helps to avoid data anomalies during updates.",
		"Нормализация помогает избежать аномалий данных при обновлениях."},
	{"Stored Procedure", "Хранимая процедура", "Базы данных (Databases)",
		"Complex business logic is often implemented as a stored procedure.",
		"Сложная бизнес-логика часто реализуется в виде хранимой процедуры."},
	{"ACID", "ACID (Атомарность, Согласованность, Изоляция, Долговечность)", "Базы данных (Databases)",
		"Relational databases guarantee ACID compliance for transactions.",
		"Реляционные базы данных гарантируют соответствие принципам ACID для транзакций."},
	{"Data Warehouse", "Хранилище данных", "Базы данных (Databases)",
		"All historical sales data is consolidated in the data warehouse for BI tools.",
		"Все исторические данные о продажах консолидируются в хранилище данных."},
	{"ORM", "ORM (Объектно-реляционное отображение)", "Базы данных (Databases)",
		"Using an ORM like SQLAlchemy simplifies database interactions in Python applications.",
		"Использование ORM упрощает взаимодействие с базой данных."},
	{"Neural Network", "Нейронная сеть", "Искусственный интеллект (Artificial Intelligence)",
		"A convolutional neural network is often used for image recognition tasks.",
		"Сверточная нейронная сеть часто используется для задач распознавания изображений."},
	{"Training", "Обучение модели", "Искусственный интеллект (Artificial Intelligence)",
		"The training of the large language model required enormous computational power.",
		"Обучение большой языковой модели потребовало колоссальных вычислительных мощностей."},
	{"Overfitting", "Переобучение", "Искусственный интеллект (Artificial Intelligence)",
		"Regularization techniques help to prevent overfitting of the model.",
		"Методы регуляризации помогают предотвратить переобучение модели."},
	{"Chatbot", "Чат-бот", "Искусственный интеллект (Artificial Intelligence)",
		"The company uses an AI-powered chatbot for handling customer inquiries.",
		"Компания использует ИИ-чат-бот для обработки запросов клиентов."},
	{"Computer Vision", "Компьютерное зрение", "Искусственный интеллект (Artificial Intelligence)",
		"Computer vision algorithms enable self-driving cars to detect pedestrians.",
		"Алгоритмы компьютерного зрения позволяют беспилотным автомобилям обнаруживать пешеходов."},
	{"Supervised Learning", "Обучение с учителем", "Искусственный интеллект (Artificial Intelligence)",
		"Image classification is a classic task for supervised learning.",
		"Классификация изображений — это классическая задача для обучения с учителем."},
	{"Inference", "Инференс, Вывод", "Искусственный интеллект (Artificial Intelligence)",
		"After training, the model's inference speed is critical for the real-time application.",
		"После обучения скорость инференса модели критически важна."},
	{"Bias", "Смещение, Смещённость", "Искусственный интеллект (Artificial Intelligence)",
		"It's crucial to audit the dataset for bias before training an AI model for hiring.",
		"Крайне важно проверить набор данных на смещённость перед обучением модели."},
	{"Token", "Токен", "Искусственный интеллект (Artificial Intelligence)",
		"In language models, the sentence is split into tokens before processing.",
		"В языковых моделях предложение разбивается на токены перед обработкой."},
	{"Generative AI", "Генеративный ИИ", "Искусственный интеллект (Artificial Intelligence)",
		"Generative AI tools can create realistic images from text descriptions.",
		"Инструменты генеративного ИИ могут создавать реалистичные изображения по текстовым описаниям."},
}

// The "streak" condition has no evaluator rule; the achievement stays locked
// until streak tracking is implemented.
var seedAchievements = []seedAchievement{
	{"Первые шаги", "Пройдите первую тренировку", "🎯", `{"type": "first_training"}`},
	{"Словарный запас", "Добавьте 10 слов в словарь", "📚", `{"type": "words_added", "count": 10}`},
	{"Мастер точности", "Достигните 90% точности в тренировке", "🎯", `{"type": "accuracy", "threshold": 90}`},
	{"Неделя обучения", "Тренируйтесь 7 дней подряд", "🔥", `{"type": "streak", "days": 7}`},
	{"Сто слов", "Изучите 100 слов", "💯", `{"type": "words_mastered", "count": 100}`},
}

// Seed fills the database with the initial categories, the shared IT
// dictionary and the achievement catalogue. Safe to run on every startup:
// rows that already exist are left untouched.
func Seed(ctx context.Context, db *sqlx.DB) error {
	categories := NewCategoryRepository(db)

	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, name := range seedCategories {
		category, err := categories.GetOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		categoryIDs[name] = category.ID
	}

	for _, w := range seedWords {
		categoryID, ok := categoryIDs[w.Category]
		if !ok {
			return fmt.Errorf("seed word %q references unknown category %q", w.English, w.Category)
		}
		if err := seedSharedWord(ctx, db, w, categoryID); err != nil {
			return err
		}
	}

	for _, a := range seedAchievements {
		if err := seedOneAchievement(ctx, db, a); err != nil {
			return err
		}
	}

	return nil
}

func seedSharedWord(ctx context.Context, db *sqlx.DB, w seedWord, categoryID int64) error {
	var existing int64
	query := db.Rebind("SELECT id FROM words WHERE english_word = ? AND user_id IS NULL")
	err := db.GetContext(ctx, &existing, query, w.English)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check seed word %q: %w", w.English, err)
	}

	query = db.Rebind(`
		INSERT INTO words (english_word, russian_translation, category_id,
			example_sentence, example_sentence_ru, user_id, is_public)
		VALUES (?, ?, ?, ?, ?, NULL, TRUE)`)
	if _, err := db.ExecContext(ctx, query, w.English, w.Russian, categoryID, w.Example, w.ExampleRu); err != nil {
		return fmt.Errorf("failed to seed word %q: %w", w.English, err)
	}
	return nil
}

func seedOneAchievement(ctx context.Context, db *sqlx.DB, a seedAchievement) error {
	query := db.Rebind(`
		INSERT INTO achievements (name, description, icon, condition)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING`)
	if _, err := db.ExecContext(ctx, query, a.Name, a.Description, a.Icon, a.Condition); err != nil {
		return fmt.Errorf("failed to seed achievement %q: %w", a.Name, err)
	}
	return nil
}
