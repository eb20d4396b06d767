package services

import (
	"fmt"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
	"github.com/nivalis-labs/gcdctl/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.ConversionDispatcher = (*Dispatcher)(nil)

// Dispatcher is the single public entry point for converting an XML
// document of uncertain type: detect-or-override, then convert.
type Dispatcher struct {
	registry driven.ConverterRegistry
}

// NewDispatcher creates a new conversion dispatcher.
func NewDispatcher(registry driven.ConverterRegistry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch converts a document. A non-empty declared type is used
// verbatim (case-insensitive) and must name one of the known schemas;
// otherwise the format detector runs on the root tag.
func (d *Dispatcher) Dispatch(xmlText string, declared domain.RecordType) (*domain.ConversionResult, error) {
	rtype := declared

	if rtype == domain.TypeUnknown {
		detected, err := d.registry.Detect(xmlText)
		if err != nil {
			return nil, err
		}
		if detected == domain.TypeUnknown {
			return nil, fmt.Errorf("%w; specify an explicit type (supported: %s)",
				domain.ErrUndetectableType, supportedKeys())
		}
		rtype = detected
		logger.Debug("Detected XML type: %s", rtype)
	} else {
		// Normalise and validate the override against the closed set.
		parsed, err := domain.ParseRecordType(string(rtype))
		if err != nil {
			return nil, err
		}
		rtype = parsed
	}

	converter, err := d.registry.Get(rtype)
	if err != nil {
		return nil, err
	}
	return converter.Convert(xmlText)
}

func supportedKeys() string {
	keys := ""
	for i, t := range domain.SupportedTypes() {
		if i > 0 {
			keys += ", "
		}
		keys += string(t)
	}
	return keys
}
