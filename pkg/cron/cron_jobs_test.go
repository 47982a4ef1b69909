package cron

import (
	"context"
	"testing"

	"meubolso/internal/repositories/ledger"
	"meubolso/internal/testdb"
)

func TestReconcileCleanLedger(t *testing.T) {
	db := testdb.New(t)
	repo := ledger.NewRepository(db)

	if _, err := repo.CreateUser(context.Background(), "Ana", "ana@x.com", "hash"); err != nil {
		t.Fatal(err)
	}

	drifted, err := ReconcileWalletBalances(db)
	if err != nil {
		t.Fatalf("reconciliation failed: %v", err)
	}
	if drifted != 0 {
		t.Errorf("expected no drift on a clean ledger, got %d", drifted)
	}
}

func TestReconcileDetectsInjectedDrift(t *testing.T) {
	db := testdb.New(t)
	repo := ledger.NewRepository(db)

	user, err := repo.CreateUser(context.Background(), "Ana", "ana@x.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	// Bypass the repository and corrupt the materialized balance directly.
	_, err = db.Exec("UPDATE wallets SET balance = 999.99 WHERE user_id = ?", user.ID)
	if err != nil {
		t.Fatal(err)
	}

	drifted, err := ReconcileWalletBalances(db)
	if err != nil {
		t.Fatalf("reconciliation failed: %v", err)
	}
	if drifted != 1 {
		t.Errorf("expected exactly one drifted wallet, got %d", drifted)
	}
}
