package sqlconnect

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		balance DECIMAL(14,2) NOT NULL DEFAULT 0.00,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_wallets_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		icon VARCHAR(64) NOT NULL DEFAULT '',
		user_id INT NULL,
		UNIQUE KEY uq_categories_owner_name (user_id, name),
		CONSTRAINT fk_categories_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		wallet_id INT NOT NULL,
		category_id INT NULL,
		type ENUM('INCOME','EXPENSE','TRANSFER') NOT NULL,
		amount DECIMAL(14,2) NOT NULL,
		occurred_at DATETIME NOT NULL,
		description VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_transactions_user_occurred (user_id, occurred_at),
		CONSTRAINT fk_transactions_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_transactions_wallet FOREIGN KEY (wallet_id) REFERENCES wallets(id),
		CONSTRAINT fk_transactions_category FOREIGN KEY (category_id) REFERENCES categories(id)
	)`,
}

// Default categories shared by every user (user_id stays NULL).
var globalCategories = []string{
	"Alimentação",
	"Lazer",
	"Moradia",
	"Saúde",
	"Transporte",
}

// EnsureSchema creates the tables and seeds the global categories. The
// UNIQUE key on (user_id, name) backs the duplicate-category check, so two
// concurrent creates with the same name cannot both land.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// A NULL user_id never collides on the unique key, so the seed has to
	// guard against re-inserting on every boot.
	for _, name := range globalCategories {
		_, err := db.Exec(
			`INSERT INTO categories (name, icon, user_id)
			 SELECT ?, '', NULL FROM DUAL
			 WHERE NOT EXISTS (SELECT 1 FROM categories WHERE user_id IS NULL AND name = ?)`,
			name, name,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
