package domain

import "time"

// ImportResult is the outcome of importing one source document.
//
// A failure before upload begins (read error, parse error, unresolved
// destination) leaves Upload nil and Err set. A failure during upload
// is captured inside Upload; Err stays nil. Success is true only when
// conversion succeeded AND every record uploaded.
type ImportResult struct {
	// Source is the origin of the document (file path, "<stdin>").
	Source string `json:"file"`

	// Type is the detected or declared schema.
	Type RecordType `json:"type,omitempty"`

	// Endpoint is the resolved destination, when one was resolved.
	Endpoint Endpoint `json:"endpoint,omitempty"`

	// Success is the conjunction of conversion and upload success.
	Success bool `json:"success"`

	// Converted holds the conversion output when conversion succeeded.
	// Not serialised in summaries; convert-only callers render it.
	Converted *ConversionResult `json:"-"`

	// Upload holds per-record outcomes once uploading started.
	Upload *UploadBatchResult `json:"upload_result,omitempty"`

	// Err is the single top-level error for pre-upload failures.
	Err error `json:"-"`
}

// ImportSummary aggregates an ordered multi-source run.
type ImportSummary struct {
	// Results holds one entry per source, in input order.
	Results []ImportResult

	// Succeeded counts fully successful sources.
	Succeeded int

	// Total is the number of sources attempted.
	Total int
}

// AllSucceeded reports whether every source fully succeeded.
// Drives the process exit code.
func (s *ImportSummary) AllSucceeded() bool {
	return s.Succeeded == s.Total
}

// ImportRecord is one row of persisted import history.
type ImportRecord struct {
	// ID identifies the history row.
	ID string

	// Source, Type and Endpoint mirror the ImportResult.
	Source   string
	Type     RecordType
	Endpoint Endpoint

	// Records and Failed count the uploaded records.
	Records int
	Failed  int

	// Success mirrors ImportResult.Success.
	Success bool

	// CreatedAt is when the import ran.
	CreatedAt time.Time
}
