package domain

import (
	"fmt"
	"strings"
)

// Endpoint is a destination on the collection service.
// The string value doubles as the CLI --endpoint key.
type Endpoint string

const (
	// EndpointCalibration receives calibration-family records
	// (VEM calibration, DOMCal, SPEFit).
	EndpointCalibration Endpoint = "calibration"

	// EndpointDetectorStatus receives per-run detector status derived
	// from baseline records. Requires a run number.
	EndpointDetectorStatus Endpoint = "detector-status"

	// EndpointGeometry receives geometric placements.
	EndpointGeometry Endpoint = "geometry"
)

// Path returns the request path for the endpoint.
func (e Endpoint) Path() string {
	return "/" + string(e)
}

// RequiresRunNumber reports whether uploads to the endpoint need a
// caller-supplied run number.
func (e Endpoint) RequiresRunNumber() bool {
	return e == EndpointDetectorStatus
}

// SupportedEndpoints lists every destination key.
func SupportedEndpoints() []Endpoint {
	return []Endpoint{EndpointCalibration, EndpointDetectorStatus, EndpointGeometry}
}

// ParseEndpoint resolves a case-insensitive destination key.
func ParseEndpoint(s string) (Endpoint, error) {
	key := Endpoint(strings.ToLower(strings.TrimSpace(s)))
	for _, e := range SupportedEndpoints() {
		if key == e {
			return e, nil
		}
	}
	keys := make([]string, 0, 3)
	for _, e := range SupportedEndpoints() {
		keys = append(keys, string(e))
	}
	return "", fmt.Errorf("%w: %q (supported: %s)",
		ErrUnknownDestination, s, strings.Join(keys, ", "))
}

// endpointsByCollection is the fixed destination table. Collection names
// are fixed by the converters, so an unmapped name is a programming
// error on the caller's side and fails the whole batch.
var endpointsByCollection = map[string]Endpoint{
	"calibrations": EndpointCalibration,
	"domcals":      EndpointCalibration,
	"spe_fits":     EndpointCalibration,
	"baselines":    EndpointDetectorStatus,
	"geometry":     EndpointGeometry,
}

// EndpointForCollection infers the destination for a collection name.
func EndpointForCollection(collection string) (Endpoint, error) {
	e, ok := endpointsByCollection[collection]
	if !ok {
		return "", fmt.Errorf("%w: no endpoint mapping for collection %q",
			ErrUnknownDestination, collection)
	}
	return e, nil
}

// UploadOutcome is the result of one remote write for one record.
// Created once per record per upload attempt and never mutated.
type UploadOutcome struct {
	// Path is the destination request path.
	Path string `json:"path"`

	// StatusCode is the HTTP status, or nil when the transport failed
	// before a response was received.
	StatusCode *int `json:"status,omitempty"`

	// Success is true iff the write completed with a 2xx status.
	Success bool `json:"success"`

	// Error holds the failure detail for unsuccessful writes.
	Error string `json:"error,omitempty"`

	// Body is the decoded response body, when one was returned.
	Body map[string]any `json:"data,omitempty"`
}

// UploadBatchResult collects the outcome of every record in one upload.
// Invariant: len(Outcomes) always equals the input record count, and
// Succeeded+Failed == len(Outcomes). No silent drops.
type UploadBatchResult struct {
	// BatchID identifies this upload attempt.
	BatchID string `json:"batch_id"`

	// Endpoint is the destination all records were sent to.
	Endpoint Endpoint `json:"endpoint"`

	// Count is the number of records attempted.
	Count int `json:"count"`

	// Outcomes holds one entry per record, in input order.
	Outcomes []UploadOutcome `json:"results"`

	// Succeeded and Failed partition the outcomes.
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// Success is true iff every outcome succeeded.
	Success bool `json:"success"`
}
