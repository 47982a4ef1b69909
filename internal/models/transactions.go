package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome   = "INCOME"
	TypeExpense  = "EXPENSE"
	TypeTransfer = "TRANSFER"
)

func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

type Transaction struct {
	ID          int             `json:"id,omitempty" db:"id,omitempty"`
	UserID      int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	WalletID    int             `json:"wallet_id,omitempty" db:"wallet_id,omitempty"`
	CategoryID  sql.NullInt64   `json:"-" db:"category_id,omitempty"`
	Type        string          `json:"type,omitempty" db:"type,omitempty"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	OccurredAt  time.Time       `json:"occurred_at" db:"occurred_at"`
	Description string          `json:"description,omitempty" db:"description,omitempty"`
	CreatedAt   sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
}

// SignedAmount is the transaction's contribution to its wallet balance:
// +amount for INCOME, -amount for EXPENSE, zero for TRANSFER.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TypeIncome:
		return t.Amount
	case TypeExpense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
