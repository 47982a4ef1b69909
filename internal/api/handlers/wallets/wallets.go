package wallets

import (
	"net/http"

	"meubolso/internal/api/middlewares"
	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/utils"
)

// FUNC TO LIST THE USER'S WALLETS
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

	repo := ledger.NewRepository(db)
	list, err := repo.ListWallets(r.Context(), userID)
	if err != nil {
		utils.Logger.Errorf("failed to list wallets: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"wallets": list,
	})
}
