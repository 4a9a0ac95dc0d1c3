package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"mirrormirror/internal/models/db_models"
)

// FileResultsRepository keeps all records in a single JSON array file. Appends
// are serialized by a single-writer lock and land via write-temp-then-rename,
// so a failed write never touches the previous file.
type FileResultsRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileResultsRepository(path string) *FileResultsRepository {
	return &FileResultsRepository{path: path}
}

func (r *FileResultsRepository) Append(ctx context.Context, record *db_models.FortuneRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readLocked()
	if err != nil {
		return err
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	records = append(records, *record)

	return r.writeLocked(records)
}

func (r *FileResultsRepository) ListAll(ctx context.Context) ([]db_models.FortuneRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readLocked()
}

func (r *FileResultsRepository) ListByName(ctx context.Context, name string) ([]db_models.FortuneRecord, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]db_models.FortuneRecord, 0)
	for _, rec := range all {
		if rec.Name == name {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *FileResultsRepository) readLocked() ([]db_models.FortuneRecord, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []db_models.FortuneRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	if len(raw) == 0 {
		return []db_models.FortuneRecord{}, nil
	}

	var records []db_models.FortuneRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// Refuse to clobber a file we cannot parse.
		return nil, fmt.Errorf("parse results file: %w", err)
	}
	return records, nil
}

func (r *FileResultsRepository) writeLocked(records []db_models.FortuneRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write results temp file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace results file: %w", err)
	}
	return nil
}
