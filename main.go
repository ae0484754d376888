package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/akshitarai30/MediCareAssistant/api/handlers"

	"go.uber.org/zap"

	"github.com/akshitarai30/MediCareAssistant/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database, router and dose scheduler
		log.Fatal(err)
	}

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("medicare-assistant is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
