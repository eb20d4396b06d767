// Package domcal converts DOMCal XML (per-DOM calibration properties)
// into normalised calibration records.
package domcal

import (
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles the DOMCal schema.
type Converter struct{}

// New creates a new DOM calibration converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the schema this converter handles.
func (c *Converter) Type() domain.RecordType {
	return domain.TypeDOMCalibration
}

// Collection returns the group name for converted records.
func (c *Converter) Collection() string {
	return "domcals"
}

// Convert maps a DOMCal document to calibration records, one per DOM
// child of the root.
func (c *Converter) Convert(xmlText string) (*domain.ConversionResult, error) {
	root, err := xmlkit.Parse(xmlText)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"date": xmlkit.CoerceText(root.FindText("Date")),
		"type": "DOMCal",
	}

	doms := root.FindAll("DOM")
	records := make([]domain.Record, 0, len(doms))
	for _, dom := range doms {
		stringID := xmlkit.Coerce(dom.FindText("StringId"))
		tubeID := xmlkit.Coerce(dom.FindText("TubeId"))

		// relative_pmt_gain defaults to 1.0 when the element is absent.
		relativeGain := any(1.0)
		if dom.Has("RelativePMTGain") {
			relativeGain = xmlkit.Coerce(dom.FindText("RelativePMTGain"))
		}

		records = append(records, domain.Record{
			"dom_id":    domain.DOMID(stringID, tubeID),
			"string_id": stringID,
			"tube_id":   tubeID,
			"atwd_gain": []any{
				xmlkit.Coerce(dom.FindText("ATWDGain0")),
				xmlkit.Coerce(dom.FindText("ATWDGain1")),
				xmlkit.Coerce(dom.FindText("ATWDGain2")),
			},
			"atwd_freq": []any{
				xmlkit.Coerce(dom.FindText("ATWDFrequency0")),
				xmlkit.Coerce(dom.FindText("ATWDFrequency1")),
				xmlkit.Coerce(dom.FindText("ATWDFrequency2")),
			},
			"fadc_gain":         xmlkit.Coerce(dom.FindText("FADCGain")),
			"fadc_freq":         xmlkit.Coerce(dom.FindText("FADCFrequency")),
			"pmt_gain":          xmlkit.Coerce(dom.FindText("PMTGain")),
			"transit_time":      xmlkit.Coerce(dom.FindText("TransitTime")),
			"relative_pmt_gain": relativeGain,
		})
	}

	return &domain.ConversionResult{
		Type:       c.Type(),
		Metadata:   metadata,
		Collection: c.Collection(),
		Records:    records,
	}, nil
}
