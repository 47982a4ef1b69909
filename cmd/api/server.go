package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	mw "meubolso/internal/api/middlewares"
	"meubolso/internal/api/routers"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/cron"
	"meubolso/pkg/utils"
)

func main() {
	godotenv.Load()

	utils.InitLogger()

	if err := utils.InitTokenSecret(); err != nil {
		utils.Logger.Fatal("Token secret configuration error: ", err)
	}

	if err := sqlconnect.ConnectDb(); err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	cronJobs := cron.StartCronJobs(sqlconnect.DB)
	defer cronJobs.Stop()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	router := routers.MainRouter()
	secureMux := mw.SecurityHeaders(mw.AccessGate(router))

	server := &http.Server{
		Addr:         port,
		Handler:      secureMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("Server is running on port ", port)
	if err := server.ListenAndServe(); err != nil {
		utils.Logger.Fatal("Error starting the server: ", err)
	}
}
