package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
	"github.com/nivalis-labs/gcdctl/internal/logger"
)

// DefaultConcurrency bounds the number of in-flight record writes.
const DefaultConcurrency = 4

// Ensure UploadService implements the interface.
var _ driving.Uploader = (*UploadService)(nil)

// UploadService performs one remote write per normalised record and
// collects per-record outcomes. Writes within a batch run concurrently
// up to the configured bound; each outcome is written into the slot
// matching its record's input position, so the outcome order always
// equals the input order regardless of completion order.
type UploadService struct {
	transport   driven.Transport
	concurrency int
}

// NewUploadService creates a new upload service. A concurrency of
// zero or less falls back to DefaultConcurrency.
func NewUploadService(transport driven.Transport, concurrency int) *UploadService {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &UploadService{transport: transport, concurrency: concurrency}
}

// Upload sends every record of a conversion result to its destination.
// Destination resolution failures return before any record is sent;
// individual write failures are captured as failed outcomes and never
// abort sibling writes.
func (s *UploadService) Upload(
	ctx context.Context,
	result *domain.ConversionResult,
	endpoint domain.Endpoint,
	runNumber *int,
) (*domain.UploadBatchResult, error) {
	if result == nil {
		return nil, domain.ErrInvalidInput
	}

	var err error
	if endpoint == "" {
		endpoint, err = domain.EndpointForCollection(result.Collection)
		if err != nil {
			return nil, err
		}
	}
	if endpoint.RequiresRunNumber() && runNumber == nil {
		return nil, fmt.Errorf("%w: run number required for %s uploads",
			domain.ErrUnknownDestination, endpoint)
	}

	payloads := buildPayloads(result, endpoint, runNumber)

	batch := &domain.UploadBatchResult{
		BatchID:  uuid.New().String(),
		Endpoint: endpoint,
		Count:    len(payloads),
		Outcomes: make([]domain.UploadOutcome, len(payloads)),
	}

	logger.Debug("Uploading %d records to %s", len(payloads), endpoint.Path())

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i, payload := range payloads {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, payload domain.Record) {
			defer wg.Done()
			defer func() { <-sem }()
			batch.Outcomes[i] = s.sendOne(ctx, endpoint.Path(), payload)
		}(i, payload)
	}
	wg.Wait()

	for _, outcome := range batch.Outcomes {
		if outcome.Success {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	batch.Success = batch.Failed == 0

	logger.Info("Upload complete: %d/%d records to %s",
		batch.Succeeded, batch.Count, endpoint.Path())
	return batch, nil
}

// sendOne performs a single record write. Transport errors and non-2xx
// responses both yield a failed outcome; nothing escalates past the
// batch boundary.
func (s *UploadService) sendOne(ctx context.Context, path string, payload domain.Record) domain.UploadOutcome {
	resp, err := s.transport.Send(ctx, http.MethodPost, path, payload)
	if err != nil {
		logger.Debug("Write to %s failed: %v", path, err)
		return domain.UploadOutcome{Path: path, Error: err.Error()}
	}

	code := resp.StatusCode
	outcome := domain.UploadOutcome{
		Path:       path,
		StatusCode: &code,
		Body:       resp.Body,
	}
	if code >= 200 && code < 300 {
		outcome.Success = true
	} else {
		outcome.Error = fmt.Sprintf("HTTP %d", code)
	}
	return outcome
}

// buildPayloads shapes the records for their destination. Records bound
// for detector-status are reshaped into per-run status entries carrying
// the run number and the document timestamp; everything else is sent
// as-is. The run number is guaranteed non-nil for detector-status by
// the resolution check above.
func buildPayloads(result *domain.ConversionResult, endpoint domain.Endpoint, runNumber *int) []domain.Record {
	if endpoint != domain.EndpointDetectorStatus {
		return result.Records
	}

	timestamp := result.Metadata["timestamp"]
	payloads := make([]domain.Record, 0, len(result.Records))
	for _, rec := range result.Records {
		payloads = append(payloads, domain.Record{
			"run_number": *runNumber,
			"dom_id":     rec["dom_id"],
			"status":     "operational",
			"timestamp":  timestamp,
		})
	}
	return payloads
}
