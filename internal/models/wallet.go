package models

import "github.com/shopspring/decimal"

// WalletSummary is the shape embedded in transaction listings.
type WalletSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Wallet struct {
	ID        int             `json:"id,omitempty" db:"id,omitempty"`
	UserID    int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	Name      string          `json:"name,omitempty" db:"name,omitempty"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt string          `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
