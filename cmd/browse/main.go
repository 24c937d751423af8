package main

import (
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"invoiceradar/config"
	"invoiceradar/store"
	"invoiceradar/tui"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	dataFile := flag.String("data", "", "corpus file path (overrides DATA_FILE)")
	flag.Parse()

	cfg := config.Load()
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	p := tea.NewProgram(tui.NewModel(store.NewFileStore(cfg.DataFile)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
