package converters

import (
	"strings"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/xmlkit"
)

// detectRules is the fixed ordered rule list. "vemcalib" must come
// before any generic calibration substring so a VEMCalibOm root never
// resolves to an ambiguous type. The "spefit" rule also covers
// "spefitom" roots.
var detectRules = []struct {
	substr string
	rtype  domain.RecordType
}{
	{"vemcalib", domain.TypeVEMCalibration},
	{"baseline", domain.TypeBaseline},
	{"domcal", domain.TypeDOMCalibration},
	{"spefit", domain.TypeSPEFit},
	{"geometry", domain.TypeGeometry},
}

// Detect inspects only the document's root element tag, lower-cases it
// and matches by substring against the rule list. First match wins;
// no match returns TypeUnknown. Malformed XML returns the parse error
// verbatim, never TypeUnknown.
func Detect(xmlText string) (domain.RecordType, error) {
	tag, err := xmlkit.RootTag(xmlText)
	if err != nil {
		return domain.TypeUnknown, err
	}

	lower := strings.ToLower(tag)
	for _, rule := range detectRules {
		if strings.Contains(lower, rule.substr) {
			return rule.rtype, nil
		}
	}
	return domain.TypeUnknown, nil
}
