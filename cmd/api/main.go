package main

import (
	"log"

	"recruitment-backend/internal/bootstrap"
	"recruitment-backend/internal/shared/config"
	"recruitment-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg)
	log.Printf("Starting API server on %s (provider=%s)", addr, cfg.UploadProvider)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
