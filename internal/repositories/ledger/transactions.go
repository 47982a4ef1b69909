package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meubolso/internal/models"
)

// TransactionRecord is a transaction joined with its category (if any) and
// wallet, as the listing and summary endpoints return it.
type TransactionRecord struct {
	Transaction models.Transaction
	Category    *models.CategorySummary
	Wallet      models.WalletSummary
}

// CreateTransaction inserts the row and applies its signed amount to the
// wallet balance as one atomic unit. The wallet update is scoped to the
// owner; zero affected rows means the wallet does not exist or belongs to
// someone else, and the whole unit rolls back.
func (r *Repository) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.CategoryID.Valid {
		var id int
		err := r.db.QueryRowContext(ctx,
			"SELECT id FROM categories WHERE id = ? AND (user_id = ? OR user_id IS NULL)",
			t.CategoryID.Int64, t.UserID,
		).Scan(&id)
		if err == sql.ErrNoRows {
			return t, ErrCategoryNotFound
		}
		if err != nil {
			return t, fmt.Errorf("failed to check category: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return t, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t.OccurredAt = t.OccurredAt.UTC()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, wallet_id, category_id, type, amount, occurred_at, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.WalletID, t.CategoryID, t.Type, t.Amount, t.OccurredAt, t.Description,
	)
	if err != nil {
		return t, fmt.Errorf("failed to insert transaction: %w", err)
	}

	diff := t.SignedAmount()
	if !diff.IsZero() {
		upd, err := tx.ExecContext(ctx,
			"UPDATE wallets SET balance = balance + ? WHERE id = ? AND user_id = ?",
			diff, t.WalletID, t.UserID,
		)
		if err != nil {
			return t, fmt.Errorf("failed to update balance: %w", err)
		}
		affected, err := upd.RowsAffected()
		if err != nil {
			return t, fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return t, ErrWalletNotFound
		}
	} else {
		// TRANSFER moves no money, but the wallet must still be the
		// caller's.
		var id int
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM wallets WHERE id = ? AND user_id = ?",
			t.WalletID, t.UserID,
		).Scan(&id)
		if err == sql.ErrNoRows {
			return t, ErrWalletNotFound
		}
		if err != nil {
			return t, fmt.Errorf("failed to check wallet: %w", err)
		}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return t, fmt.Errorf("failed to get transaction id: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return t, fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.ID = int(id)
	return t, nil
}

// DeleteTransaction removes an owned transaction and reverses its balance
// effect in the same commit. The lookup filters by id and owner inside the
// transaction, so a foreign id reads as not found.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, transactionID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing models.Transaction
	err = tx.QueryRowContext(ctx,
		"SELECT id, user_id, wallet_id, type, amount FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, userID,
	).Scan(&existing.ID, &existing.UserID, &existing.WalletID, &existing.Type, &existing.Amount)
	if err == sql.ErrNoRows {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", existing.ID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	reversal := existing.SignedAmount().Neg()
	if !reversal.IsZero() {
		_, err = tx.ExecContext(ctx,
			"UPDATE wallets SET balance = balance + ? WHERE id = ? AND user_id = ?",
			reversal, existing.WalletID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.wallet_id, t.category_id, t.type, t.amount,
	       t.occurred_at, t.description,
	       c.id, c.name,
	       w.id, w.name
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
	JOIN wallets w ON w.id = t.wallet_id
	WHERE t.user_id = ?
`

// ListTransactions returns the user's transactions, newest first. When start
// and end are non-zero only rows inside [start, end) are returned.
func (r *Repository) ListTransactions(ctx context.Context, userID int, start, end time.Time) ([]TransactionRecord, error) {
	query := transactionSelect
	args := []interface{}{userID}

	if !start.IsZero() && !end.IsZero() {
		query += " AND t.occurred_at >= ? AND t.occurred_at < ?"
		args = append(args, start.UTC(), end.UTC())
	}
	query += " ORDER BY t.occurred_at DESC"

	return r.queryTransactions(ctx, query, args...)
}

// TransactionsBetween returns the user's transactions inside [start, end),
// oldest first, for the monthly summary.
func (r *Repository) TransactionsBetween(ctx context.Context, userID int, start, end time.Time) ([]TransactionRecord, error) {
	query := transactionSelect + " AND t.occurred_at >= ? AND t.occurred_at < ? ORDER BY t.occurred_at ASC"
	return r.queryTransactions(ctx, query, userID, start.UTC(), end.UTC())
}

func (r *Repository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]TransactionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	records := []TransactionRecord{}
	for rows.Next() {
		var rec TransactionRecord
		var catID sql.NullInt64
		var catName sql.NullString

		err = rows.Scan(
			&rec.Transaction.ID, &rec.Transaction.UserID, &rec.Transaction.WalletID,
			&rec.Transaction.CategoryID, &rec.Transaction.Type, &rec.Transaction.Amount,
			&rec.Transaction.OccurredAt, &rec.Transaction.Description,
			&catID, &catName,
			&rec.Wallet.ID, &rec.Wallet.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if catID.Valid {
			rec.Category = &models.CategorySummary{ID: int(catID.Int64), Name: catName.String}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return records, nil
}
