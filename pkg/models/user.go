package models

import "time"

// User represents a bot user. Identity comes from the transport layer
// (Telegram); TelegramID is the stable external ID all other records key on.
type User struct {
	ID         int64     `json:"id" db:"id"`
	TelegramID int64     `json:"telegram_id" db:"telegram_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
