package converters

import (
	"fmt"

	"github.com/nivalis-labs/gcdctl/internal/converters/baseline"
	"github.com/nivalis-labs/gcdctl/internal/converters/domcal"
	"github.com/nivalis-labs/gcdctl/internal/converters/geometry"
	"github.com/nivalis-labs/gcdctl/internal/converters/spefit"
	"github.com/nivalis-labs/gcdctl/internal/converters/vemcalib"
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ConverterRegistry = (*Registry)(nil)

// Registry holds the closed set of schema converters.
type Registry struct {
	converters map[domain.RecordType]driven.Converter
}

// NewRegistry creates a registry with the built-in converters.
func NewRegistry() *Registry {
	r := &Registry{
		converters: make(map[domain.RecordType]driven.Converter),
	}
	r.register(vemcalib.New())
	r.register(baseline.New())
	r.register(domcal.New())
	r.register(spefit.New())
	r.register(geometry.New())
	return r
}

func (r *Registry) register(c driven.Converter) {
	r.converters[c.Type()] = c
}

// Detect inspects the document's root tag and returns the matching
// schema, or TypeUnknown when no rule matches.
func (r *Registry) Detect(xmlText string) (domain.RecordType, error) {
	return Detect(xmlText)
}

// Get returns the converter for a schema.
func (r *Registry) Get(t domain.RecordType) (driven.Converter, error) {
	c, ok := r.converters[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, string(t))
	}
	return c, nil
}
