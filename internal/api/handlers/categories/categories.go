package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"meubolso/internal/api/middlewares"
	"meubolso/internal/models"
	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/utils"
)

type categoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
	// nil for the shared default categories
	UserID *int64 `json:"userId"`
}

func toResponse(c models.Category) categoryResponse {
	resp := categoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon}
	if c.UserID.Valid {
		id := c.UserID.Int64
		resp.UserID = &id
	}
	return resp
}

// FUNC TO LIST CATEGORIES (defaults first, then the user's own)
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
	cats, err := repo.ListCategories(r.Context(), userID)
	if err != nil {
		utils.Logger.Errorf("failed to list categories: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	out := []categoryResponse{}
	for _, c := range cats {
		out = append(out, toResponse(c))
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"categorias": out,
	})
}

// FUNC TO CREATE A CATEGORY
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

	type request struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "Dados inválidos", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(req.Name) < 2 {
		utils.WriteError(w, "Dados inválidos", http.StatusBadRequest)
		return
	}

	repo := ledger.NewRepository(db)
	cat, err := repo.CreateCategory(r.Context(), userID, req.Name, req.Icon)
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateCategory) {
			utils.WriteError(w, "Categoria já existe", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to create category: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"categoria": toResponse(cat),
	})
}

// FUNC TO DELETE A CATEGORY (detaches its transactions in the same commit)
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

	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || categoryID <= 0 {
		utils.WriteError(w, "ID inválido", http.StatusBadRequest)
		return
	}

	repo := ledger.NewRepository(db)
	if err := repo.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		if errors.Is(err, ledger.ErrCategoryNotFound) {
			utils.WriteError(w, "Categoria não encontrada", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete category: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
