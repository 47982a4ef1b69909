package routers

import (
	"net/http"

	"meubolso/internal/api/handlers/health"
	"meubolso/internal/api/handlers/summary"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	aRouter := authRouter()
	mux.Handle("/auth/", aRouter)

	cRouter := categoriesRouter()
	mux.Handle("/categorias", cRouter)
	mux.Handle("/categorias/", cRouter)

	tRouter := transactionsRouter()
	mux.Handle("/transactions", tRouter)
	mux.Handle("/transactions/", tRouter)

	wRouter := walletsRouter()
	mux.Handle("/wallets", wRouter)

	mux.HandleFunc("GET /summary", summary.MonthHandler)

	mux.HandleFunc("GET /health", health.CheckHandler)

	return mux
}
