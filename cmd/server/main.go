package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"invoiceradar/api"
	"invoiceradar/config"
	"invoiceradar/orchestrator"
	"invoiceradar/sources"
	"invoiceradar/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	cfg := config.Load()
	adapters := sources.All(cfg)
	st := store.NewFileStore(cfg.DataFile)
	runner := orchestrator.New(cfg, adapters, st)

	r := api.NewRouter(api.NewServer(st, adapters, runner))
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/news")
	log.Println("  GET  /api/news/:id")
	log.Println("  GET  /api/sources")
	log.Println("  POST /api/crawl")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
