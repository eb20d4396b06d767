package driving

import "github.com/nivalis-labs/gcdctl/internal/core/domain"

// ConversionDispatcher is the single public entry point for converting
// an XML document of uncertain type.
type ConversionDispatcher interface {
	// Dispatch converts a document, using declared verbatim when
	// non-empty and running format detection otherwise.
	//
	// Fails with domain.ErrUnsupportedType for an unrecognised declared
	// key, domain.ErrUndetectableType when detection matches nothing,
	// and a *xmlkit.ParseError for malformed XML.
	Dispatch(xmlText string, declared domain.RecordType) (*domain.ConversionResult, error)
}
