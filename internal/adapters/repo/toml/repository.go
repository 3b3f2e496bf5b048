// Package toml stores the run history in a single versioned TOML file.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

const (
	HistoryPathKey = "history.path"

	historyFileMode   = 0o600
	historyDirMode    = 0o700
	historyConfigDir  = ".seckill"
	historyConfigFile = "history.toml"
	tempFilePattern   = ".history-*.toml.tmp"

	// maxRuns bounds the file; the oldest runs are dropped first.
	maxRuns = 200
)

type Repository struct {
	historyPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RunRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	historyPath := cfg.GetString(HistoryPathKey)
	if historyPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		historyPath = filepath.Join(homeDir, historyConfigDir, historyConfigFile)
	}

	historyPath, err := normalizePath(historyPath)
	if err != nil {
		return nil, err
	}

	return &Repository{historyPath: historyPath, mu: lockForPath(historyPath)}, nil
}

func (r *Repository) Path() string {
	return r.historyPath
}

// Save inserts the run or replaces the entry with the same id.
func (r *Repository) Save(ctx context.Context, run domain.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(run)
	updated := false
	for i := range file.Runs {
		if file.Runs[i].ID == encoded.ID {
			file.Runs[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Runs = append(file.Runs, encoded)
	}
	if len(file.Runs) > maxRuns {
		file.Runs = file.Runs[len(file.Runs)-maxRuns:]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id string) (domain.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.RunRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.RunRecord{}, err
	}

	for _, entry := range file.Runs {
		if entry.ID == id {
			return fromSchema(entry), nil
		}
	}

	return domain.RunRecord{}, fmt.Errorf("run %q: %w", id, domain.ErrRunNotFound)
}

// List returns every stored run, newest first.
func (r *Repository) List(ctx context.Context) ([]domain.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	runs := make([]domain.RunRecord, 0, len(file.Runs))
	for _, entry := range file.Runs {
		runs = append(runs, fromSchema(entry))
	}
	sort.SliceStable(runs, func(a, b int) bool {
		return runs[a].StartedAt.After(runs[b].StartedAt)
	})

	return runs, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(run domain.RunRecord) runSchema {
	return runSchema{
		ID:           run.ID,
		SKU:          string(run.Item.SKU),
		Quantity:     run.Item.Quantity,
		Workers:      run.Workers,
		Target:       formatTime(run.Target),
		StartedAt:    formatTime(run.StartedAt),
		FinishedAt:   formatTime(run.FinishedAt),
		Status:       string(run.Status),
		Attempts:     run.Attempts,
		PurchaseURLs: run.PurchaseURLs,
		Error:        run.Error,
	}
}

func fromSchema(run runSchema) domain.RunRecord {
	return domain.RunRecord{
		ID:           run.ID,
		Item:         domain.Item{SKU: domain.SKU(run.SKU), Quantity: run.Quantity},
		Workers:      run.Workers,
		Target:       parseTime(run.Target),
		StartedAt:    parseTime(run.StartedAt),
		FinishedAt:   parseTime(run.FinishedAt),
		Status:       domain.RunStatus(run.Status),
		Attempts:     run.Attempts,
		PurchaseURLs: run.PurchaseURLs,
		Error:        run.Error,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}
