package services

import (
	"context"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
	"github.com/nivalis-labs/gcdctl/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService ties conversion and upload together into one operation
// per source document.
type ImportService struct {
	dispatcher driving.ConversionDispatcher
	uploader   driving.Uploader
	history    driven.HistoryStore
}

// NewImportService creates a new import service. The history store is
// optional; when nil, runs are not recorded.
func NewImportService(
	dispatcher driving.ConversionDispatcher,
	uploader driving.Uploader,
	history driven.HistoryStore,
) *ImportService {
	return &ImportService{
		dispatcher: dispatcher,
		uploader:   uploader,
		history:    history,
	}
}

// ImportOne runs dispatch, destination inference and upload for one
// source. Pre-upload failures yield a result with a single top-level
// error and no upload batch; upload failures live inside the batch.
func (s *ImportService) ImportOne(
	ctx context.Context,
	doc domain.RawDocument,
	opts driving.ImportOptions,
) domain.ImportResult {
	res := domain.ImportResult{Source: doc.Source}

	logger.Debug("Importing %s", doc.Source)

	converted, err := s.dispatcher.Dispatch(doc.Content, doc.DeclaredType)
	if err != nil {
		res.Err = err
		return res
	}
	res.Type = converted.Type
	res.Converted = converted

	if opts.ConvertOnly {
		res.Success = true
		return res
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint, err = domain.EndpointForCollection(converted.Collection)
		if err != nil {
			res.Err = err
			return res
		}
	}
	res.Endpoint = endpoint

	batch, err := s.uploader.Upload(ctx, converted, endpoint, opts.RunNumber)
	if err != nil {
		res.Err = err
		s.record(ctx, res)
		return res
	}
	res.Upload = batch
	res.Success = batch.Success

	s.record(ctx, res)
	return res
}

// ImportAll runs ImportOne per source, independently and in input
// order. A failure in one source never affects another's outcome.
func (s *ImportService) ImportAll(
	ctx context.Context,
	docs []domain.RawDocument,
	opts driving.ImportOptions,
) *domain.ImportSummary {
	summary := &domain.ImportSummary{
		Results: make([]domain.ImportResult, 0, len(docs)),
		Total:   len(docs),
	}

	for _, doc := range docs {
		res := s.ImportOne(ctx, doc, opts)
		if res.Success {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, res)
	}

	logger.Info("Import complete: %d/%d sources succeeded",
		summary.Succeeded, summary.Total)
	return summary
}

// record persists the result when a history store is configured.
// Best effort: a history failure never fails the import.
func (s *ImportService) record(ctx context.Context, res domain.ImportResult) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordImport(ctx, res); err != nil {
		logger.Warn("Failed to record import history: %v", err)
	}
}
