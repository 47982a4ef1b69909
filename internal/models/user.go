package models

type User struct {
	ID           int    `json:"id,omitempty" db:"id,omitempty"`
	Name         string `json:"name,omitempty" db:"name,omitempty"`
	Email        string `json:"email,omitempty" db:"email,omitempty"`
	PasswordHash string `json:"-" db:"password_hash,omitempty"`
	CreatedAt    string `json:"created_at,omitempty" db:"created_at,omitempty"`
}
