package routers

import (
	"net/http"

	"meubolso/internal/api/handlers/wallets"
)

func walletsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /wallets", wallets.ListHandler)

	return mux
}
