package driving

import (
	"context"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
)

// ImportOptions carries the caller-level overrides for an import run.
type ImportOptions struct {
	// Endpoint overrides destination inference when non-empty.
	Endpoint domain.Endpoint

	// RunNumber is required when the resolved destination is
	// detector-status.
	RunNumber *int

	// ConvertOnly skips the upload stage entirely.
	ConvertOnly bool
}

// Importer ties conversion and upload together into one operation per
// source document.
type Importer interface {
	// ImportOne runs dispatch, destination inference and upload for a
	// single source. Failures before upload begins yield a result with
	// no upload batch and a single top-level error; failures during
	// upload are captured inside the batch result.
	ImportOne(ctx context.Context, doc domain.RawDocument, opts ImportOptions) domain.ImportResult

	// ImportAll runs ImportOne per source, independently and in input
	// order, and aggregates the tally. A failure in one source never
	// affects another's outcome.
	ImportAll(ctx context.Context, docs []domain.RawDocument, opts ImportOptions) *domain.ImportSummary
}
