package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// --- Mock implementations for dispatcher testing ---

// dispatchMockConverter implements driven.Converter.
type dispatchMockConverter struct {
	rtype      domain.RecordType
	collection string
	result     *domain.ConversionResult
	convertErr error
	calls      int
}

func (m *dispatchMockConverter) Type() domain.RecordType { return m.rtype }
func (m *dispatchMockConverter) Collection() string      { return m.collection }

func (m *dispatchMockConverter) Convert(_ string) (*domain.ConversionResult, error) {
	m.calls++
	if m.convertErr != nil {
		return nil, m.convertErr
	}
	return m.result, nil
}

// dispatchMockRegistry implements driven.ConverterRegistry.
type dispatchMockRegistry struct {
	detected   domain.RecordType
	detectErr  error
	converters map[domain.RecordType]*dispatchMockConverter
}

func (m *dispatchMockRegistry) Detect(_ string) (domain.RecordType, error) {
	if m.detectErr != nil {
		return domain.TypeUnknown, m.detectErr
	}
	return m.detected, nil
}

func (m *dispatchMockRegistry) Get(t domain.RecordType) (driven.Converter, error) {
	c, ok := m.converters[t]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	return c, nil
}

func TestDispatcher_DetectsAndConverts(t *testing.T) {
	conv := &dispatchMockConverter{
		rtype:      domain.TypeVEMCalibration,
		collection: "calibrations",
		result: &domain.ConversionResult{
			Type:       domain.TypeVEMCalibration,
			Collection: "calibrations",
			Records:    []domain.Record{{"dom_id": "01,61"}},
		},
	}
	registry := &dispatchMockRegistry{
		detected: domain.TypeVEMCalibration,
		converters: map[domain.RecordType]*dispatchMockConverter{
			domain.TypeVEMCalibration: conv,
		},
	}
	d := NewDispatcher(registry)

	result, err := d.Dispatch("<VEMCalibOm/>", domain.TypeUnknown)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeVEMCalibration, result.Type)
	assert.Equal(t, 1, conv.calls)
}

func TestDispatcher_DeclaredTypeSkipsDetection(t *testing.T) {
	conv := &dispatchMockConverter{
		rtype:      domain.TypeBaseline,
		collection: "baselines",
		result:     &domain.ConversionResult{Type: domain.TypeBaseline, Collection: "baselines"},
	}
	// Detection would fail loudly if consulted.
	registry := &dispatchMockRegistry{
		detectErr: errors.New("detect should not be called"),
		converters: map[domain.RecordType]*dispatchMockConverter{
			domain.TypeBaseline: conv,
		},
	}
	d := NewDispatcher(registry)

	result, err := d.Dispatch("<whatever/>", domain.TypeBaseline)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeBaseline, result.Type)
}

func TestDispatcher_DeclaredTypeCaseInsensitive(t *testing.T) {
	conv := &dispatchMockConverter{
		rtype:  domain.TypeGeometry,
		result: &domain.ConversionResult{Type: domain.TypeGeometry, Collection: "geometry"},
	}
	registry := &dispatchMockRegistry{
		converters: map[domain.RecordType]*dispatchMockConverter{
			domain.TypeGeometry: conv,
		},
	}
	d := NewDispatcher(registry)

	result, err := d.Dispatch("<Geometry/>", domain.RecordType("GEOMETRY"))
	require.NoError(t, err)

	assert.Equal(t, domain.TypeGeometry, result.Type)
}

func TestDispatcher_UnsupportedDeclaredType(t *testing.T) {
	registry := &dispatchMockRegistry{
		converters: map[domain.RecordType]*dispatchMockConverter{},
	}
	d := NewDispatcher(registry)

	_, err := d.Dispatch("<root/>", domain.RecordType("bogus"))
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "bogus")
}

func TestDispatcher_UndetectableType(t *testing.T) {
	registry := &dispatchMockRegistry{
		detected:   domain.TypeUnknown,
		converters: map[domain.RecordType]*dispatchMockConverter{},
	}
	d := NewDispatcher(registry)

	_, err := d.Dispatch("<Unrelated/>", domain.TypeUnknown)
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrUndetectableType)
	// The message lists the supported type keys to guide the caller.
	assert.Contains(t, err.Error(), string(domain.TypeVEMCalibration))
	assert.Contains(t, err.Error(), string(domain.TypeGeometry))
}

func TestDispatcher_MalformedXMLSurfacedVerbatim(t *testing.T) {
	parseErr := &xmlkit.ParseError{Err: errors.New("unexpected EOF")}
	registry := &dispatchMockRegistry{detectErr: parseErr}
	d := NewDispatcher(registry)

	_, err := d.Dispatch("<root><unclosed>", domain.TypeUnknown)
	require.Error(t, err)

	var pe *xmlkit.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.NotErrorIs(t, err, domain.ErrUndetectableType)
}
