package models

import "database/sql"

// Category with a NULL user_id is global: visible to every user, never
// deletable through the API.
type Category struct {
	ID     int           `json:"id,omitempty" db:"id,omitempty"`
	Name   string        `json:"name,omitempty" db:"name,omitempty"`
	Icon   string        `json:"icon,omitempty" db:"icon,omitempty"`
	UserID sql.NullInt64 `json:"-" db:"user_id,omitempty"`
}

// CategorySummary is the shape embedded in transaction listings.
type CategorySummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
