// Package attemptlog appends acquisition attempts to a JSONL file so a run
// can be tailed or replayed after the fact.
package attemptlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/seckill-cli/internal/domain"
	"github.com/bnema/seckill-cli/internal/ports"
)

// Writer is safe for concurrent use by every worker of a run.
type Writer struct {
	mu   sync.Mutex
	path string
	file *os.File
	w    *bufio.Writer
}

var _ ports.AttemptRecorder = (*Writer)(nil)

// New returns a writer appending to path, or nil when path is blank. A nil
// *Writer records nothing.
func New(path string) *Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return &Writer{path: path}
}

// Record is one line of the attempt log.
type Record struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Worker      int       `json:"worker"`
	Iteration   int       `json:"iteration"`
	PurchaseURL string    `json:"purchase_url,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	DurationMS  int64     `json:"duration_ms"`
	State       string    `json:"state"`
	Outcome     string    `json:"outcome,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Code        int       `json:"code,omitempty"`
	PaymentURL  string    `json:"payment_url,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func NewRecord(a domain.AcquisitionAttempt) Record {
	rec := Record{
		ID:          a.ID,
		RunID:       a.RunID,
		Worker:      a.Worker,
		Iteration:   a.Iteration,
		PurchaseURL: a.PurchaseURL,
		StartedAt:   a.StartedAt,
		FinishedAt:  a.FinishedAt,
		DurationMS:  a.FinishedAt.Sub(a.StartedAt).Milliseconds(),
		State:       string(a.State),
		Error:       a.Err,
	}
	if a.Outcome != nil {
		rec.Outcome = string(a.Outcome.Kind)
		rec.Reason = a.Outcome.Reason
		rec.Code = a.Outcome.Code
		rec.PaymentURL = a.Outcome.PurchaseURL
	}
	return rec
}

func (w *Writer) Record(attempt domain.AcquisitionAttempt) error {
	return w.Write(NewRecord(attempt))
}

func (w *Writer) ensureOpenLocked() error {
	if w.file != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	w.file = f
	w.w = bufio.NewWriterSize(f, 64*1024)
	return nil
}

// Write appends v as one JSON line and flushes it.
func (w *Writer) Write(v any) error {
	if w == nil {
		return nil
	}
	if v == nil {
		return fmt.Errorf("attemptlog: nil record")
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureOpenLocked(); err != nil {
		return fmt.Errorf("attemptlog: open %s: %w", w.path, err)
	}

	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	if w.w != nil {
		if err := w.w.Flush(); err != nil {
			firstErr = err
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.w = nil
	w.file = nil

	if firstErr != nil && errors.Is(firstErr, os.ErrClosed) {
		return nil
	}
	return firstErr
}
