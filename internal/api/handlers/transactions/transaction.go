package transactions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"meubolso/internal/api/middlewares"
	"meubolso/internal/models"
	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/utils"
)

type transactionResponse struct {
	ID          int                     `json:"id"`
	Type        string                  `json:"type"`
	Amount      decimal.Decimal         `json:"amount"`
	OccurredAt  time.Time               `json:"occurredAt"`
	Description string                  `json:"description,omitempty"`
	WalletID    int                     `json:"walletId"`
	Category    *models.CategorySummary `json:"category"`
	Wallet      *models.WalletSummary   `json:"wallet,omitempty"`
}

func toResponse(rec ledger.TransactionRecord) transactionResponse {
	wallet := rec.Wallet
	return transactionResponse{
		ID:          rec.Transaction.ID,
		Type:        rec.Transaction.Type,
		Amount:      rec.Transaction.Amount,
		OccurredAt:  rec.Transaction.OccurredAt,
		Description: rec.Transaction.Description,
		WalletID:    rec.Transaction.WalletID,
		Category:    rec.Category,
		Wallet:      &wallet,
	}
}

// monthInterval resolves optional ?month=&year= filters into a half-open
// UTC interval. Both absent is valid (no filter); an unparsable pair is
// ignored, as the original listing behaved.
func monthInterval(r *http.Request) (time.Time, time.Time) {
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	if errM != nil || errY != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// FUNC TO LIST THE USER'S TRANSACTIONS
func ListHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := middlewares.UserID(r)
	if !ok {
		utils.WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start, end := monthInterval(r)

	repo := ledger.NewRepository(db)
	records, err := repo.ListTransactions(ctx, userID, start, end)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}

	out := []transactionResponse{}
	for _, rec := range records {
		out = append(out, toResponse(rec))
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"transactions": out,
	})
}

type createRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  string          `json:"occurredAt"`
	Description string          `json:"description"`
	CategoryID  *int64          `json:"categoryId"`
	WalletID    int             `json:"walletId"`
}

func (req createRequest) validate() (time.Time, error) {
	if !models.ValidTransactionType(req.Type) {
		return time.Time{}, errors.New("invalid type")
	}
	if !req.Amount.IsPositive() {
		return time.Time{}, errors.New("amount must be positive")
	}
	if req.WalletID <= 0 {
		return time.Time{}, errors.New("walletId is required")
	}
	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		return time.Time{}, errors.New("invalid occurredAt")
	}
	return occurredAt, nil
}

// FUNC TO CREATE A TRANSACTION (row insert + balance update, one commit)
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := middlewares.UserID(r)
	if !ok {
		utils.WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "Dados inválidos", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	occurredAt, err := req.validate()
	if err != nil {
		utils.WriteError(w, "Dados inválidos", http.StatusBadRequest)
		return
	}

	t := models.Transaction{
		UserID:      userID,
		WalletID:    req.WalletID,
		Type:        req.Type,
		Amount:      req.Amount,
		OccurredAt:  occurredAt,
		Description: req.Description,
	}
	if req.CategoryID != nil {
		t.CategoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}

	repo := ledger.NewRepository(db)
	created, err := repo.CreateTransaction(r.Context(), t)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrCategoryNotFound):
			utils.WriteError(w, "Categoria inválida", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrWalletNotFound):
			utils.WriteError(w, "Carteira inválida", http.StatusBadRequest)
		default:
			utils.Logger.Errorf("failed to create transaction: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok": true,
		"tx": map[string]interface{}{
			"id":          created.ID,
			"type":        created.Type,
			"amount":      created.Amount,
			"occurredAt":  created.OccurredAt,
			"description": created.Description,
			"walletId":    created.WalletID,
		},
	})
}

// FUNC TO DELETE A TRANSACTION (reverses its balance effect atomically)
func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := middlewares.UserID(r)
	if !ok {
		utils.WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || transactionID <= 0 {
		utils.WriteError(w, "ID inválido", http.StatusBadRequest)
		return
	}

	repo := ledger.NewRepository(db)
	if err := repo.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
		if errors.Is(err, ledger.ErrTransactionNotFound) {
			utils.WriteError(w, "Transação não encontrada", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
