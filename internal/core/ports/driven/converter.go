package driven

import "github.com/nivalis-labs/gcdctl/internal/core/domain"

// Converter maps one XML schema to a normalised record set.
// Converters are pure: no I/O, no remote calls, and converting the same
// text twice yields structurally identical results.
type Converter interface {
	// Type returns the schema this converter handles.
	Type() domain.RecordType

	// Collection returns the fixed group name for converted records.
	Collection() string

	// Convert maps an XML document to its normalised form.
	// Malformed XML returns a *xmlkit.ParseError.
	Convert(xmlText string) (*domain.ConversionResult, error)
}

// ConverterRegistry detects a document's schema and selects the
// matching converter. Callers never instantiate a converter directly
// when the type is uncertain.
type ConverterRegistry interface {
	// Detect inspects only the document's root tag and returns the
	// matching schema, or TypeUnknown when no rule matches. Malformed
	// XML is surfaced verbatim, never downgraded to TypeUnknown.
	Detect(xmlText string) (domain.RecordType, error)

	// Get returns the converter for a schema.
	Get(t domain.RecordType) (Converter, error)
}
