// Package domain defines the core business entities for gcdctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: An XML export as text, before conversion
//   - RecordType: The closed set of recognised XML schemas
//   - Record: One normalised physical entity (a DOM's calibration,
//     a baseline reading, a geometric placement)
//   - ConversionResult: Document metadata plus the converted records
//   - UploadOutcome / UploadBatchResult: Per-record upload results
//   - ImportResult / ImportSummary: Per-file and per-run results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
