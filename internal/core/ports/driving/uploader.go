package driving

import (
	"context"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
)

// Uploader delivers converted records to the collection service, one
// remote write per record.
type Uploader interface {
	// Upload sends every record of a conversion result to endpoint.
	// When endpoint is empty it is inferred from the result's
	// collection name.
	//
	// Destination resolution failures (unmapped collection, missing run
	// number for detector-status) return an error before any record is
	// sent. Individual write failures never abort sibling writes; they
	// are captured as failed outcomes in the returned batch result,
	// which always holds exactly one outcome per input record.
	Upload(ctx context.Context, result *domain.ConversionResult, endpoint domain.Endpoint, runNumber *int) (*domain.UploadBatchResult, error)
}
