// Package spefit converts SPEFit XML (single photon event fitting)
// into normalised fit records.
package spefit

import (
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles the SPEFit schema.
type Converter struct{}

// New creates a new SPE fit converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the schema this converter handles.
func (c *Converter) Type() domain.RecordType {
	return domain.TypeSPEFit
}

// Collection returns the group name for converted records.
func (c *Converter) Collection() string {
	return "spe_fits"
}

// Convert maps a SPEFit document to fit records, one per DOM child of
// the root. The atwd_fit and fadc_fit sub-objects are included only
// when their parent element exists.
func (c *Converter) Convert(xmlText string) (*domain.ConversionResult, error) {
	root, err := xmlkit.Parse(xmlText)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"date": xmlkit.CoerceText(root.FindText("Date")),
		"type": "SPEFit",
	}

	doms := root.FindAll("DOM")
	records := make([]domain.Record, 0, len(doms))
	for _, dom := range doms {
		stringID := xmlkit.Coerce(dom.FindText("StringId"))
		tubeID := xmlkit.Coerce(dom.FindText("TubeId"))

		rec := domain.Record{
			"dom_id":    domain.DOMID(stringID, tubeID),
			"string_id": stringID,
			"tube_id":   tubeID,
		}

		if fit := dom.Find("ATWDFit"); fit != nil {
			rec["atwd_fit"] = convertFit(fit)
		}
		if fit := dom.Find("FADCFit"); fit != nil {
			rec["fadc_fit"] = convertFit(fit)
		}

		records = append(records, rec)
	}

	return &domain.ConversionResult{
		Type:       c.Type(),
		Metadata:   metadata,
		Collection: c.Collection(),
		Records:    records,
	}, nil
}

// convertFit maps one fit element. Status defaults to 0 when the child
// is absent.
func convertFit(fit *xmlkit.Element) map[string]any {
	status := any(0)
	if fit.Has("Status") {
		status = xmlkit.Coerce(fit.FindText("Status"))
	}
	return map[string]any{
		"chi2":   xmlkit.Coerce(fit.FindText("Chi2")),
		"status": status,
	}
}
