package ledger

import (
	"context"
	"fmt"

	"meubolso/internal/models"
)

func (r *Repository) ListWallets(ctx context.Context, userID int) ([]models.Wallet, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, balance FROM wallets WHERE user_id = ? ORDER BY name ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := []models.Wallet{}
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wallets: %w", err)
	}

	return wallets, nil
}
