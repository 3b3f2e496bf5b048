package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int         `toml:"version"`
	Runs    []runSchema `toml:"runs"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported run history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type runSchema struct {
	ID           string   `toml:"id"`
	SKU          string   `toml:"sku"`
	Quantity     int      `toml:"quantity"`
	Workers      int      `toml:"workers"`
	Target       string   `toml:"target"`
	StartedAt    string   `toml:"started_at"`
	FinishedAt   string   `toml:"finished_at"`
	Status       string   `toml:"status"`
	Attempts     int      `toml:"attempts"`
	PurchaseURLs []string `toml:"purchase_urls,omitempty"`
	Error        string   `toml:"error,omitempty"`
}
