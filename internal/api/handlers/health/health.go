package health

import (
	"net/http"

	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/utils"
)

func CheckHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	repo := ledger.NewRepository(db)
	count, err := repo.UserCount(r.Context())
	if err != nil {
		utils.Logger.Errorf("health check failed: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"users": count,
	})
}
