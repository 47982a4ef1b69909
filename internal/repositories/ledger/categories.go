package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"meubolso/internal/models"
)

// ListCategories returns the global categories (name asc) followed by the
// user's own (name asc). The two groups are not merged into one ordering.
func (r *Repository) ListCategories(ctx context.Context, userID int) ([]models.Category, error) {
	categories := []models.Category{}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, icon, user_id FROM categories WHERE user_id IS NULL ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query global categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	userRows, err := r.db.QueryContext(ctx,
		"SELECT id, name, icon, user_id FROM categories WHERE user_id = ? ORDER BY name ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user categories: %w", err)
	}
	defer userRows.Close()

	for userRows.Next() {
		var c models.Category
		if err := userRows.Scan(&c.ID, &c.Name, &c.Icon, &c.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

// CreateCategory enforces per-user name uniqueness. The pre-check gives the
// friendly conflict answer; the UNIQUE (user_id, name) key closes the race
// when two identical creates arrive together.
func (r *Repository) CreateCategory(ctx context.Context, userID int, name, icon string) (models.Category, error) {
	var category models.Category

	var existing int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE user_id = ? AND name = ?",
		userID, name,
	).Scan(&existing)
	if err != nil {
		return category, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing > 0 {
		return category, ErrDuplicateCategory
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, icon, user_id) VALUES (?, ?, ?)",
		name, icon, userID,
	)
	if err != nil {
		if isDuplicateErr(err) {
			return category, ErrDuplicateCategory
		}
		return category, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return category, fmt.Errorf("failed to get category id: %w", err)
	}

	category.ID = int(id)
	category.Name = name
	category.Icon = icon
	category.UserID = sql.NullInt64{Int64: int64(userID), Valid: true}
	return category, nil
}

// DeleteCategory removes an owned category. All of the owner's transactions
// pointing at it are repointed to "no category" in the same commit, so no
// dangling reference is ever visible. Global categories are never deletable:
// the owner filter makes them look absent.
func (r *Repository) DeleteCategory(ctx context.Context, userID, categoryID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM categories WHERE id = ? AND user_id = ?",
		categoryID, userID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query category: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE transactions SET category_id = NULL WHERE user_id = ? AND category_id = ?",
		userID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to detach transactions: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
