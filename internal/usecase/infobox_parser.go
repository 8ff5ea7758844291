package usecase

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/specwise/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	collapseSpacesRegex = regexp.MustCompile(`\s+`)
	inchesRegex         = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:in|inch|inches)`)
)

// ParseInfobox extracts a structured PhoneSpec from the rendered HTML of one
// encyclopedia article.
//
// The first element matching ".infobox" is used. When no infobox exists, the
// result carries only the identity field — an empty spec is a valid result,
// not an error. Rows repeating a field overwrite earlier ones (last wins);
// source tables rarely repeat a field, so no merge strategy is attempted.
//
// The HTML may be attacker-controlled: only text is extracted, scripts and
// styles are never evaluated, and callers must render extracted values as
// plain text.
func ParseInfobox(html, titleFallback string) *domain.PhoneSpec {
	spec := &domain.PhoneSpec{Name: titleFallback}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable input degrades to the identity-only spec.
		return spec
	}

	box := doc.Find(".infobox").First()
	if box.Length() == 0 {
		box = doc.Find("table.infobox").First()
	}
	if box.Length() == 0 {
		return spec
	}

	box.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		data := row.Find("td").First()
		if header.Length() == 0 || data.Length() == 0 {
			return
		}

		label := strings.ToLower(cellText(header))
		value := cellText(data)
		if label == "" || value == "" {
			return
		}

		addRawRow(spec, label, value)
		assignField(spec, ClassifyField(label), value)
	})

	return spec
}

// cellText returns the visible text of a table cell with citation markers
// removed and internal whitespace collapsed.
func cellText(cell *goquery.Selection) string {
	clone := cell.Clone()
	clone.Find("sup, .reference, script, style").Remove()
	return strings.TrimSpace(collapseSpacesRegex.ReplaceAllString(clone.Text(), " "))
}

// addRawRow records the raw label/value pair under its coarse category.
func addRawRow(spec *domain.PhoneSpec, label, value string) {
	category := ClassifyCategory(label)
	if spec.Rows == nil {
		spec.Rows = make(map[domain.Category]map[string]string)
	}
	if spec.Rows[category] == nil {
		spec.Rows[category] = make(map[string]string)
	}
	spec.Rows[category][label] = value
}

// assignField writes a classified value into the spec. Values arrive trimmed
// and non-empty, so assigned fields never hold an empty string.
func assignField(spec *domain.PhoneSpec, field FieldName, value string) {
	switch field {
	case FieldOS:
		spec.OS = value
	case FieldChipset:
		spec.Chipset = value
	case FieldCPU:
		spec.CPU = value
	case FieldGPU:
		spec.GPU = value
	case FieldRAM:
		spec.RAM = value
	case FieldCardSlot:
		spec.CardSlot = value
	case FieldStorage:
		spec.Storage = value
	case FieldBatteryCapacity:
		spec.BatteryCapacity = value
	case FieldCharging:
		spec.Charging = value
	case FieldDisplayType:
		spec.DisplayType = value
	case FieldDisplayResolution:
		spec.DisplayResolution = value
	case FieldRefreshRate:
		spec.RefreshRate = value
	case FieldDisplayProtection:
		spec.DisplayProtection = value
	case FieldMainCamera:
		spec.MainCamera = value
	case FieldSelfieCamera:
		spec.SelfieCamera = value
	case FieldVideo:
		// Order of encounter decides: the first video row is assumed to
		// describe the main camera, the next one the selfie camera. The
		// source tables carry no explicit labeling, so this fuzzy rule is
		// kept as-is.
		if spec.MainVideo == "" {
			spec.MainVideo = value
		} else if spec.SelfieVideo == "" {
			spec.SelfieVideo = value
		}
	case FieldWLAN:
		spec.WLAN = value
	case FieldBluetooth:
		spec.Bluetooth = value
	case FieldNFC:
		spec.NFC = value
	case FieldUSB:
		spec.USB = value
	case FieldPositioning:
		spec.Positioning = value
	case FieldBiometrics:
		spec.Biometrics = value
	case FieldIPRating:
		spec.IPRating = value
	case FieldOSUpdates:
		spec.OSUpdates = value
	case FieldBrand:
		spec.Brand = value
	case FieldDimensions:
		// Size in inches is sometimes embedded in the dimensions row; use it
		// only when no display row provided a size.
		if spec.DisplaySize == "" {
			if m := inchesRegex.FindStringSubmatch(value); m != nil {
				spec.DisplaySize = m[1] + " inches"
			}
		}
	}
}

// labeledValue is one label/value pair of the flat-field read projection.
type labeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CategoryView projects the flat fields of a spec into the six fixed
// categories for bulk rendering. Absent fields are omitted.
func CategoryView(spec *domain.PhoneSpec) map[domain.Category][]labeledValue {
	groups := map[domain.Category][]labeledValue{
		domain.CategoryDisplay: {
			{"Type", spec.DisplayType},
			{"Size", spec.DisplaySize},
			{"Resolution", spec.DisplayResolution},
			{"Refresh Rate", spec.RefreshRate},
			{"Protection", spec.DisplayProtection},
		},
		domain.CategoryHardware: {
			{"OS", spec.OS},
			{"Chipset", spec.Chipset},
			{"CPU", spec.CPU},
			{"GPU", spec.GPU},
			{"RAM", spec.RAM},
			{"Storage", spec.Storage},
			{"Card Slot", spec.CardSlot},
		},
		domain.CategoryCamera: {
			{"Main Camera", spec.MainCamera},
			{"Main Video", spec.MainVideo},
			{"Selfie Camera", spec.SelfieCamera},
			{"Selfie Video", spec.SelfieVideo},
		},
		domain.CategoryBattery: {
			{"Capacity", spec.BatteryCapacity},
			{"Charging", spec.Charging},
		},
		domain.CategoryConnectivity: {
			{"WLAN", spec.WLAN},
			{"Bluetooth", spec.Bluetooth},
			{"Positioning", spec.Positioning},
			{"NFC", spec.NFC},
			{"USB", spec.USB},
		},
		domain.CategoryOther: {
			{"Biometrics", spec.Biometrics},
			{"IP Rating", spec.IPRating},
			{"OS Updates", spec.OSUpdates},
			{"Brand", spec.Brand},
		},
	}

	view := make(map[domain.Category][]labeledValue, len(groups))
	for category, entries := range groups {
		var kept []labeledValue
		for _, e := range entries {
			if e.Value != "" {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			view[category] = kept
		}
	}
	return view
}
