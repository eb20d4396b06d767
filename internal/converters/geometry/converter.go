// Package geometry converts Geometry XML (DOM positions and tank
// placements) into normalised geometry records.
package geometry

import (
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles the Geometry schema.
type Converter struct{}

// New creates a new geometry converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the schema this converter handles.
func (c *Converter) Type() domain.RecordType {
	return domain.TypeGeometry
}

// Collection returns the group name for converted records.
func (c *Converter) Collection() string {
	return "geometry"
}

// Convert maps a Geometry document to one merged record sequence:
// every DOM descendant first, then every Tank descendant, each at any
// depth below the root.
func (c *Converter) Convert(xmlText string) (*domain.ConversionResult, error) {
	root, err := xmlkit.Parse(xmlText)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"date": xmlkit.CoerceText(root.FindText("Date")),
		"type": "Geometry",
	}

	var records []domain.Record

	for _, dom := range root.Descendants("DOM") {
		stringID := xmlkit.Coerce(dom.FindText("StringId"))
		tubeID := xmlkit.Coerce(dom.FindText("TubeId"))

		rec := domain.Record{
			"dom_id":    domain.DOMID(stringID, tubeID),
			"string_id": stringID,
			"tube_id":   tubeID,
			"position":  convertPosition(dom.Find("Position")),
		}

		// Orientation applies to DOMs only, and only when present.
		if orient := dom.Find("Orientation"); orient != nil {
			rec["orientation"] = map[string]any{
				"theta": xmlkit.Coerce(orient.FindText("theta")),
				"phi":   xmlkit.Coerce(orient.FindText("phi")),
			}
		}

		records = append(records, rec)
	}

	for _, tank := range root.Descendants("Tank") {
		records = append(records, domain.Record{
			"tank_id":    xmlkit.CoerceText(tank.FindText("TankId")),
			"tank_label": xmlkit.CoerceText(tank.FindText("TankLabel")),
			"position":   convertPosition(tank.Find("Position")),
		})
	}

	return &domain.ConversionResult{
		Type:       c.Type(),
		Metadata:   metadata,
		Collection: c.Collection(),
		Records:    records,
	}, nil
}

// convertPosition maps a Position element. A missing element still
// yields the required keys, coerced from empty text.
func convertPosition(pos *xmlkit.Element) map[string]any {
	if pos == nil {
		pos = &xmlkit.Element{}
	}
	return map[string]any{
		"x": xmlkit.Coerce(pos.FindText("x")),
		"y": xmlkit.Coerce(pos.FindText("y")),
		"z": xmlkit.Coerce(pos.FindText("z")),
	}
}
