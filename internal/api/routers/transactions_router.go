package routers

import (
	"net/http"

	"meubolso/internal/api/handlers/transactions"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /transactions", transactions.ListHandler)
	mux.HandleFunc("POST /transactions", transactions.CreateHandler)
	mux.HandleFunc("DELETE /transactions/{id}", transactions.DeleteHandler)

	return mux
}
