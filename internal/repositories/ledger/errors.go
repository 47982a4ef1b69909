package ledger

import "errors"

// Not-found covers both "does not exist" and "belongs to someone else":
// every lookup filters by id AND owner, so a foreign resource is
// indistinguishable from a missing one.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateCategory   = errors.New("category already exists")
	ErrDuplicateEmail      = errors.New("email already registered")
)
