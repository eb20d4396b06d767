package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RecordType identifies which XML schema a document uses.
// The string value doubles as the CLI --type key.
type RecordType string

const (
	// TypeUnknown means detection failed to match any known schema.
	TypeUnknown RecordType = ""

	// TypeVEMCalibration is the VEMCalibOm schema (surface VEM calibration).
	TypeVEMCalibration RecordType = "vemcalibom"

	// TypeBaseline is the ATWD/FADC baseline schema.
	TypeBaseline RecordType = "baseline"

	// TypeDOMCalibration is the DOMCal schema (per-DOM calibration properties).
	TypeDOMCalibration RecordType = "domcal"

	// TypeSPEFit is the SPEFit schema (single photon event fitting).
	TypeSPEFit RecordType = "spefit"

	// TypeGeometry is the detector geometry schema.
	TypeGeometry RecordType = "geometry"
)

// SupportedTypes lists every recognised schema key, in detection order.
func SupportedTypes() []RecordType {
	return []RecordType{
		TypeVEMCalibration,
		TypeBaseline,
		TypeDOMCalibration,
		TypeSPEFit,
		TypeGeometry,
	}
}

// ParseRecordType resolves a case-insensitive schema key.
// Returns ErrUnsupportedType naming the offending value and the
// supported set when the key is not recognised.
func ParseRecordType(s string) (RecordType, error) {
	key := RecordType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range SupportedTypes() {
		if key == t {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("%w: %q (supported: %s)",
		ErrUnsupportedType, s, joinTypes(SupportedTypes()))
}

func joinTypes(types []RecordType) string {
	keys := make([]string, len(types))
	for i, t := range types {
		keys[i] = string(t)
	}
	return strings.Join(keys, ", ")
}

// RawDocument is an XML export as text, plus an optional explicit
// schema override. It is immutable input to the pipeline.
type RawDocument struct {
	// Source is the origin of the document (file path, "<stdin>", etc).
	Source string

	// Content is the XML text.
	Content string

	// DeclaredType overrides format detection when non-empty.
	DeclaredType RecordType
}

// Record is one normalised physical entity: a mapping from string keys
// to scalar or nested-mapping values. Immutable once built.
type Record map[string]any

// ConversionResult is the output of one schema converter: document-level
// metadata plus the ordered record sequence, grouped under the
// converter's collection name. The collection name is fixed by the
// converter used, never guessed from content.
type ConversionResult struct {
	// Type is the schema the document was converted from.
	Type RecordType

	// Metadata holds document-level fields (date, run bounds) plus the
	// literal schema tag (e.g. "VEM_Calibration").
	Metadata map[string]any

	// Collection is the type-specific group name ("calibrations",
	// "baselines", "domcals", "spe_fits", "geometry").
	Collection string

	// Records is the ordered sequence of normalised records.
	Records []Record
}

// MarshalJSON renders the result in the wire shape expected by the
// collection service: {"metadata": {...}, "<collection>": [...]}.
func (r *ConversionResult) MarshalJSON() ([]byte, error) {
	records := r.Records
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(map[string]any{
		"metadata":   r.Metadata,
		r.Collection: records,
	})
}

// DOMID renders the canonical "SS,TT" identity for a (string, tube)
// coordinate pair. Integer ids are zero-padded to width 2 and widen for
// values >= 100; ids that did not coerce to an integer are rendered
// as-is.
func DOMID(stringID, tubeID any) string {
	return padID(stringID) + "," + padID(tubeID)
}

func padID(v any) string {
	if n, ok := v.(int); ok {
		return fmt.Sprintf("%02d", n)
	}
	return fmt.Sprintf("%v", v)
}
