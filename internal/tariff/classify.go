// Package tariff maps utility tariff identifiers to fixed charge-code families.
package tariff

import "strings"

// Class is one tariff family with its consumption and gross-display codes.
type Class struct {
	Name string

	PeakCode    string
	PeakDesc    string
	OffPeakCode string
	OffPeakDesc string

	// Gross charges are display-only lines showing the pre-discount amount.
	GrossPeakCode    string
	GrossPeakDesc    string
	GrossOffPeakCode string
	GrossOffPeakDesc string
}

var (
	// TOUMediumVoltage covers "TOU MV" tariffs (time-of-use, medium voltage).
	TOUMediumVoltage = Class{
		Name:             "TOU MV",
		PeakCode:         "P-1008",
		PeakDesc:         "תעוז מתח גבוה - עם הנחה פסגה",
		OffPeakCode:      "P-1009",
		OffPeakDesc:      "תעוז מתח גבוה - עם הנחה שפל",
		GrossPeakCode:    "P-5008",
		GrossPeakDesc:    `סה"כ חיוב גולמי תעוז מתח גבוה פסגה`,
		GrossOffPeakCode: "P-5009",
		GrossOffPeakDesc: `סה"כ חיוב גולמי תעוז מתח גבוה שפל`,
	}

	// TOULowVoltage covers all other "TOU" tariffs and doubles as the
	// fallback for unrecognized tariff IDs.
	TOULowVoltage = Class{
		Name:             "TOU LV",
		PeakCode:         "P-2008",
		PeakDesc:         "תעוז מתח נמוך - עם הנחה פסגה",
		OffPeakCode:      "P-2009",
		OffPeakDesc:      "תעוז מתח נמוך - עם הנחה שפל",
		GrossPeakCode:    "P-5004",
		GrossPeakDesc:    `סה"כ חיוב גולמי תעוז מתח נמוך פסגה`,
		GrossOffPeakCode: "P-5005",
		GrossOffPeakDesc: `סה"כ חיוב גולמי תעוז מתח נמוך שפל`,
	}

	// Residential covers household tariffs.
	Residential = Class{
		Name:             "Residential",
		PeakCode:         "P-3008",
		PeakDesc:         "מגורים - עם הנחה פסגה",
		OffPeakCode:      "P-3009",
		OffPeakDesc:      "מגורים - עם הנחה שפל",
		GrossPeakCode:    "P-5038",
		GrossPeakDesc:    `סה"כ חיוב גולמי מגורים פסגה`,
		GrossOffPeakCode: "P-5039",
		GrossOffPeakDesc: `סה"כ חיוב גולמי מגורים שפל`,
	}

	// Streetlight covers municipal street lighting tariffs.
	Streetlight = Class{
		Name:             "Streetlight",
		PeakCode:         "P-4008",
		PeakDesc:         "תאורת רחוב - עם הנחה פסגה",
		OffPeakCode:      "P-4009",
		OffPeakDesc:      "תאורת רחוב - עם הנחה שפל",
		GrossPeakCode:    "P-5048",
		GrossPeakDesc:    `סה"כ חיוב גולמי תאורת רחוב פסגה`,
		GrossOffPeakCode: "P-5049",
		GrossOffPeakDesc: `סה"כ חיוב גולמי תאורת רחוב שפל`,
	}
)

// Classify matches a tariff ID against the known families. Predicates run in
// priority order: "TOU MV" must be checked before the broader "TOU" substring.
// Unrecognized IDs fall back to the low-voltage TOU codes with known=false so
// callers can surface a data-quality warning.
func Classify(tariffID string) (class Class, known bool) {
	t := strings.ToUpper(tariffID)
	switch {
	case strings.Contains(t, "TOU MV"):
		return TOUMediumVoltage, true
	case strings.Contains(t, "TOU"):
		return TOULowVoltage, true
	case strings.Contains(t, "RESIDENTIAL"):
		return Residential, true
	case strings.Contains(t, "STREETLIGHT"):
		return Streetlight, true
	default:
		return TOULowVoltage, false
	}
}
