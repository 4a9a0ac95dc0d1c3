package repositories

import (
	"context"

	"mirrormirror/internal/models/db_models"
)

// ResultsRepository is the append-only store for finished fortunes. There are
// deliberately no update or delete operations.
type ResultsRepository interface {
	Append(ctx context.Context, record *db_models.FortuneRecord) error
	ListAll(ctx context.Context) ([]db_models.FortuneRecord, error)
	ListByName(ctx context.Context, name string) ([]db_models.FortuneRecord, error)
}
