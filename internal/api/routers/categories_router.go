package routers

import (
	"net/http"

	"meubolso/internal/api/handlers/categories"
)

func categoriesRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /categorias", categories.ListHandler)
	mux.HandleFunc("POST /categorias", categories.CreateHandler)
	mux.HandleFunc("DELETE /categorias/{id}", categories.DeleteHandler)

	return mux
}
