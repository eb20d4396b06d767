package driven

import (
	"context"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
)

// HistoryStore persists import results so past runs can be reviewed.
// Recording is best effort: a history failure never fails an import.
type HistoryStore interface {
	// RecordImport appends one import result.
	RecordImport(ctx context.Context, res domain.ImportResult) error

	// ListImports returns the most recent imports, newest first.
	ListImports(ctx context.Context, limit int) ([]domain.ImportRecord, error)

	// Close releases the underlying store.
	Close() error
}
