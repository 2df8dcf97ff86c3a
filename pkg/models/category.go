package models

// Category groups dictionary words by theme
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"category_name"`
}
