package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"meubolso/internal/models"
)

// DefaultWalletName is the wallet every user starts with.
const DefaultWalletName = "Carteira"

// CreateUser inserts the user and their default wallet in one transaction.
// Either both rows exist afterwards or neither does.
func (r *Repository) CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	var user models.User

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return user, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		name, email, passwordHash,
	)
	if err != nil {
		if isDuplicateErr(err) {
			return user, ErrDuplicateEmail
		}
		return user, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return user, fmt.Errorf("failed to get user id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO wallets (user_id, name, balance) VALUES (?, ?, 0.00)",
		id, DefaultWalletName,
	)
	if err != nil {
		return user, fmt.Errorf("failed to create default wallet: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return user, fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.ID = int(id)
	user.Name = name
	user.Email = email
	return user, nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash FROM users WHERE email = ?",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return user, ErrUserNotFound
	}
	if err != nil {
		return user, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (r *Repository) FindUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err == sql.ErrNoRows {
		return user, ErrUserNotFound
	}
	if err != nil {
		return user, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (r *Repository) UserCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
