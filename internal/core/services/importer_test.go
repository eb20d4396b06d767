package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// --- Mock implementations for import testing ---

// importMockDispatcher implements driving.ConversionDispatcher.
// Results are keyed by document content.
type importMockDispatcher struct {
	results map[string]*domain.ConversionResult
	errs    map[string]error
}

func (m *importMockDispatcher) Dispatch(xmlText string, _ domain.RecordType) (*domain.ConversionResult, error) {
	if err, ok := m.errs[xmlText]; ok {
		return nil, err
	}
	if res, ok := m.results[xmlText]; ok {
		return res, nil
	}
	return nil, domain.ErrUndetectableType
}

// importMockUploader implements driving.Uploader.
type importMockUploader struct {
	batch     *domain.UploadBatchResult
	uploadErr error
	calls     int
	lastRun   *int
}

func (m *importMockUploader) Upload(
	_ context.Context,
	_ *domain.ConversionResult,
	endpoint domain.Endpoint,
	runNumber *int,
) (*domain.UploadBatchResult, error) {
	m.calls++
	m.lastRun = runNumber
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	batch := *m.batch
	batch.Endpoint = endpoint
	return &batch, nil
}

// importMockHistory implements driven.HistoryStore.
type importMockHistory struct {
	recorded  []domain.ImportResult
	recordErr error
}

func (m *importMockHistory) RecordImport(_ context.Context, res domain.ImportResult) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.recorded = append(m.recorded, res)
	return nil
}

func (m *importMockHistory) ListImports(_ context.Context, _ int) ([]domain.ImportRecord, error) {
	return nil, nil
}

func (m *importMockHistory) Close() error { return nil }

func importFixtures() (*importMockDispatcher, *importMockUploader, *importMockHistory) {
	dispatcher := &importMockDispatcher{
		results: map[string]*domain.ConversionResult{
			"<VEMCalibOm/>": {
				Type:       domain.TypeVEMCalibration,
				Collection: "calibrations",
				Records:    []domain.Record{{"dom_id": "01,61"}},
			},
		},
		errs: map[string]error{
			"<broken>": &xmlkit.ParseError{Err: errors.New("unexpected EOF")},
		},
	}
	uploader := &importMockUploader{
		batch: &domain.UploadBatchResult{
			BatchID:   "batch-1",
			Count:     1,
			Outcomes:  []domain.UploadOutcome{{Success: true}},
			Succeeded: 1,
			Success:   true,
		},
	}
	return dispatcher, uploader, &importMockHistory{}
}

func TestImportService_ImportOne_Success(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{})

	assert.True(t, res.Success)
	assert.NoError(t, res.Err)
	assert.Equal(t, "vem.xml", res.Source)
	assert.Equal(t, domain.TypeVEMCalibration, res.Type)
	assert.Equal(t, domain.EndpointCalibration, res.Endpoint)
	require.NotNil(t, res.Upload)
	assert.True(t, res.Upload.Success)

	// The run is recorded in history.
	require.Len(t, history.recorded, 1)
	assert.Equal(t, "vem.xml", history.recorded[0].Source)
}

func TestImportService_ImportOne_ParseFailure(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	doc := domain.RawDocument{Source: "broken.xml", Content: "<broken>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{})

	assert.False(t, res.Success)
	require.Error(t, res.Err)
	var pe *xmlkit.ParseError
	assert.ErrorAs(t, res.Err, &pe)

	// Nothing is uploaded for a document that failed to convert.
	assert.Nil(t, res.Upload)
	assert.Equal(t, 0, uploader.calls)
}

func TestImportService_ImportOne_ConvertOnly(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{ConvertOnly: true})

	assert.True(t, res.Success)
	require.NotNil(t, res.Converted)
	assert.Equal(t, "calibrations", res.Converted.Collection)
	assert.Nil(t, res.Upload)
	assert.Equal(t, 0, uploader.calls)
	assert.Empty(t, history.recorded)
}

func TestImportService_ImportOne_RunNumberForwarded(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	run := 120421
	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	svc.ImportOne(context.Background(), doc, driving.ImportOptions{RunNumber: &run})

	require.NotNil(t, uploader.lastRun)
	assert.Equal(t, 120421, *uploader.lastRun)
}

func TestImportService_ImportOne_EndpointOverride(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{
		Endpoint: domain.EndpointGeometry,
	})

	assert.Equal(t, domain.EndpointGeometry, res.Endpoint)
	assert.Equal(t, domain.EndpointGeometry, res.Upload.Endpoint)
}

func TestImportService_ImportOne_UploadResolutionFailure(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	uploader.uploadErr = domain.ErrUnknownDestination
	svc := NewImportService(dispatcher, uploader, history)

	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{})

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrUnknownDestination)
	assert.Nil(t, res.Upload)
}

func TestImportService_ImportAll_IndependentSources(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	docs := []domain.RawDocument{
		{Source: "a.xml", Content: "<VEMCalibOm/>"},
		{Source: "broken.xml", Content: "<broken>"},
		{Source: "c.xml", Content: "<VEMCalibOm/>"},
	}
	summary := svc.ImportAll(context.Background(), docs, driving.ImportOptions{})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.False(t, summary.AllSucceeded())

	// Results stay in input order; the failure doesn't stop the run.
	require.Len(t, summary.Results, 3)
	assert.Equal(t, "a.xml", summary.Results[0].Source)
	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	assert.True(t, summary.Results[2].Success)
}

func TestImportService_ImportAll_AllSucceeded(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	svc := NewImportService(dispatcher, uploader, history)

	docs := []domain.RawDocument{
		{Source: "a.xml", Content: "<VEMCalibOm/>"},
		{Source: "b.xml", Content: "<VEMCalibOm/>"},
	}
	summary := svc.ImportAll(context.Background(), docs, driving.ImportOptions{})

	assert.True(t, summary.AllSucceeded())
	assert.Len(t, history.recorded, 2)
}

func TestImportService_HistoryFailureNeverFailsImport(t *testing.T) {
	dispatcher, uploader, history := importFixtures()
	history.recordErr = errors.New("disk full")
	svc := NewImportService(dispatcher, uploader, history)

	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{})

	assert.True(t, res.Success)
	assert.NoError(t, res.Err)
}

func TestImportService_NilHistoryStore(t *testing.T) {
	dispatcher, uploader, _ := importFixtures()
	svc := NewImportService(dispatcher, uploader, nil)

	doc := domain.RawDocument{Source: "vem.xml", Content: "<VEMCalibOm/>"}
	res := svc.ImportOne(context.Background(), doc, driving.ImportOptions{})

	assert.True(t, res.Success)
}
