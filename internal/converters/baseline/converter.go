// Package baseline converts Baseline XML (ATWD/FADC voltage references)
// into normalised baseline records.
package baseline

import (
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles the Baseline schema.
type Converter struct{}

// New creates a new baseline converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the schema this converter handles.
func (c *Converter) Type() domain.RecordType {
	return domain.TypeBaseline
}

// Collection returns the group name for converted records.
func (c *Converter) Collection() string {
	return "baselines"
}

// Convert maps a Baseline document to baseline records, one per dom
// child of the root. Unlike the other schemas, DOM identity comes from
// the dom element's StringId/TubeId attributes, not child elements.
func (c *Converter) Convert(xmlText string) (*domain.ConversionResult, error) {
	root, err := xmlkit.Parse(xmlText)
	if err != nil {
		return nil, err
	}

	date := xmlkit.CoerceText(root.FindText("date"))
	clock := xmlkit.CoerceText(root.FindText("time"))

	metadata := map[string]any{
		"date":      date,
		"time":      clock,
		"timestamp": date + " " + clock,
		"type":      "Baseline",
	}

	doms := root.FindAll("dom")
	records := make([]domain.Record, 0, len(doms))
	for _, dom := range doms {
		stringID := xmlkit.Coerce(dom.Attr("StringId"))
		tubeID := xmlkit.Coerce(dom.Attr("TubeId"))

		records = append(records, domain.Record{
			"dom_id":    domain.DOMID(stringID, tubeID),
			"string_id": stringID,
			"tube_id":   tubeID,
			"atwd_a": map[string]any{
				"chan0": xmlkit.Coerce(dom.FindText("ATWDChipAChan0")),
				"chan1": xmlkit.Coerce(dom.FindText("ATWDChipAChan1")),
				"chan2": xmlkit.Coerce(dom.FindText("ATWDChipAChan2")),
			},
			"atwd_b": map[string]any{
				"chan0": xmlkit.Coerce(dom.FindText("ATWDChipBChan0")),
				"chan1": xmlkit.Coerce(dom.FindText("ATWDChipBChan1")),
				"chan2": xmlkit.Coerce(dom.FindText("ATWDChipBChan2")),
			},
			"fadc": xmlkit.Coerce(dom.FindText("FADC")),
		})
	}

	return &domain.ConversionResult{
		Type:       c.Type(),
		Metadata:   metadata,
		Collection: c.Collection(),
		Records:    records,
	}, nil
}
