package cron

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"meubolso/pkg/utils"
)

func StartCronJobs(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at 03:00 — audit wallet balances against the transaction set
	_, err := c.AddFunc("0 3 * * *", func() {
		if _, err := ReconcileWalletBalances(db); err != nil {
			utils.Logger.Errorf("Cron job failed to reconcile wallet balances: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule balance reconciliation job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (wallet balance reconciliation daily at 03:00)")
	return c
}

// ReconcileWalletBalances recomputes every wallet's balance from its
// transactions and logs any drift from the materialized value. It is a
// read-only audit: mutations keep balances consistent transactionally, so a
// hit here means a bug or manual data surgery. It returns the number of
// drifted wallets.
func ReconcileWalletBalances(db *sql.DB) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.balance,
		       COALESCE(SUM(CASE
		           WHEN t.type = 'INCOME' THEN t.amount
		           WHEN t.type = 'EXPENSE' THEN -t.amount
		           ELSE 0
		       END), 0) AS expected
		FROM wallets w
		LEFT JOIN transactions t ON t.wallet_id = w.id
		GROUP BY w.id, w.user_id, w.balance
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	drifted := 0
	for rows.Next() {
		var walletID, userID int
		var balance, expected decimal.Decimal

		if err := rows.Scan(&walletID, &userID, &balance, &expected); err != nil {
			utils.Logger.Errorf("Failed to scan wallet audit row: %v", err)
			continue
		}

		if !balance.Equal(expected) {
			drifted++
			utils.Logger.Errorf(
				"Wallet balance drift detected: wallet=%d user=%d balance=%s expected=%s",
				walletID, userID, balance.String(), expected.String(),
			)
		}
	}
	if err := rows.Err(); err != nil {
		return drifted, err
	}

	if drifted == 0 {
		utils.Logger.Info("Wallet balance reconciliation finished, no drift")
	}
	return drifted, nil
}
