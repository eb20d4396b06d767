// Package vemcalib converts VEMCalibOm XML (surface VEM calibration)
// into normalised calibration records.
package vemcalib

import (
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles the VEMCalibOm schema.
type Converter struct{}

// New creates a new VEM calibration converter.
func New() *Converter {
	return &Converter{}
}

// Type returns the schema this converter handles.
func (c *Converter) Type() domain.RecordType {
	return domain.TypeVEMCalibration
}

// Collection returns the group name for converted records.
func (c *Converter) Collection() string {
	return "calibrations"
}

// optionalFields maps optional DOM child elements to record keys.
// Each is included only when the element is present, regardless of
// whether its text would coerce to zero.
var optionalFields = map[string]string{
	"hglgCrossOver": "hglg_crossover",
	"muonFitStatus": "muon_fit_status",
	"muonFitRchi2":  "muon_fit_rchi2",
	"hglgFitStatus": "hglg_fit_status",
	"hglgFitRchi2":  "hglg_fit_rchi2",
}

// Convert maps a VEMCalibOm document to calibration records, one per
// DOM child of the root.
func (c *Converter) Convert(xmlText string) (*domain.ConversionResult, error) {
	root, err := xmlkit.Parse(xmlText)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"date":      xmlkit.CoerceText(root.FindText("Date")),
		"first_run": xmlkit.Coerce(root.FindText("FirstRun")),
		"last_run":  xmlkit.Coerce(root.FindText("LastRun")),
		"type":      "VEM_Calibration",
	}

	doms := root.FindAll("DOM")
	records := make([]domain.Record, 0, len(doms))
	for _, dom := range doms {
		stringID := xmlkit.Coerce(dom.FindText("StringId"))
		tubeID := xmlkit.Coerce(dom.FindText("TubeId"))

		rec := domain.Record{
			"dom_id":        domain.DOMID(stringID, tubeID),
			"string_id":     stringID,
			"tube_id":       tubeID,
			"pe_per_vem":    xmlkit.Coerce(dom.FindText("pePerVEM")),
			"mu_peak_width": xmlkit.Coerce(dom.FindText("muPeakWidth")),
			"sig_bkg_ratio": xmlkit.Coerce(dom.FindText("sigBkgRatio")),
			"corr_factor":   xmlkit.Coerce(dom.FindText("corrFactor")),
		}

		for tag, key := range optionalFields {
			if dom.Has(tag) {
				rec[key] = xmlkit.Coerce(dom.FindText(tag))
			}
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
