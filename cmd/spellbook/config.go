package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings read from the environment.
type Config struct {
	DBPath     string        `env:"SPELLBOOK_DB"`
	ArchiveDir string        `env:"SPELLBOOK_ARCHIVE"`
	BaseURL    string        `env:"SPELLBOOK_BASE_URL"    envDefault:"http://dnd5e.wikidot.com"`
	FetchDelay time.Duration `env:"SPELLBOOK_FETCH_DELAY" envDefault:"300ms"`
	Threshold  int           `env:"SPELLBOOK_THRESHOLD"   envDefault:"90"`
}

// LoadConfig parses the environment. Paths default to ~/.spellbook.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" || cfg.ArchiveDir == "" {
		dir := dataDir()
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(dir, "spells.db")
		}
		if cfg.ArchiveDir == "" {
			cfg.ArchiveDir = filepath.Join(dir, "pages")
		}
	}

	if cfg.Threshold < 0 || cfg.Threshold > 100 {
		return nil, fmt.Errorf("SPELLBOOK_THRESHOLD must be between 0 and 100, got %d", cfg.Threshold)
	}

	return &cfg, nil
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spellbook"
	}
	return filepath.Join(home, ".spellbook")
}
