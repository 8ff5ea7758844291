package usecase

import (
	"strings"

	"github.com/specwise/backend/internal/domain"
)

// FieldName identifies one attribute field of a PhoneSpec.
type FieldName string

const (
	FieldNone FieldName = ""

	FieldOS       FieldName = "os"
	FieldChipset  FieldName = "chipset"
	FieldCPU      FieldName = "cpu"
	FieldGPU      FieldName = "gpu"
	FieldRAM      FieldName = "ram"
	FieldCardSlot FieldName = "cardSlot"
	FieldStorage  FieldName = "storage"

	FieldBatteryCapacity FieldName = "batteryCapacity"
	FieldCharging        FieldName = "charging"

	FieldDisplayType       FieldName = "displayType"
	FieldDisplayResolution FieldName = "displayResolution"
	FieldRefreshRate       FieldName = "refreshRate"
	FieldDisplayProtection FieldName = "displayProtection"

	FieldMainCamera   FieldName = "mainCamera"
	FieldSelfieCamera FieldName = "selfieCamera"

	// FieldVideo is resolved by the parser to main or selfie video based on
	// order of encounter, not here.
	FieldVideo FieldName = "video"

	FieldWLAN        FieldName = "wlan"
	FieldBluetooth   FieldName = "bluetooth"
	FieldNFC         FieldName = "nfc"
	FieldUSB         FieldName = "usb"
	FieldPositioning FieldName = "positioning"

	FieldBiometrics FieldName = "biometrics"
	FieldIPRating   FieldName = "ipRating"
	FieldOSUpdates  FieldName = "osUpdates"
	FieldBrand      FieldName = "brand"

	// FieldDimensions marks a dimensions row, from which the parser may
	// extract a display size when none was found directly.
	FieldDimensions FieldName = "dimensions"
)

// fieldRule matches a label either by substring or by exact equality.
type fieldRule struct {
	contains []string
	exact    []string
	field    FieldName
}

// fieldRules is evaluated top to bottom; the first match wins. The order is
// significant: a label like "expandable storage" must hit the card-slot rule
// before the storage rule, and "operating system updates" must hit the OS
// updates rule before the generic operating-system rule.
var fieldRules = []fieldRule{
	{contains: []string{"os update", "software support", "update policy"}, field: FieldOSUpdates},
	{contains: []string{"operating system"}, field: FieldOS},
	{contains: []string{"system on", "chipset"}, exact: []string{"soc"}, field: FieldChipset},
	{contains: []string{"processor"}, exact: []string{"cpu"}, field: FieldCPU},
	{exact: []string{"gpu"}, field: FieldGPU},
	{contains: []string{"memory"}, exact: []string{"ram"}, field: FieldRAM},
	{contains: []string{"card slot", "expandable"}, field: FieldCardSlot},
	{contains: []string{"storage"}, field: FieldStorage},
	{contains: []string{"battery"}, field: FieldBatteryCapacity},
	{contains: []string{"charging"}, field: FieldCharging},
	{contains: []string{"display", "screen"}, field: FieldDisplayType},
	{contains: []string{"resolution"}, field: FieldDisplayResolution},
	{contains: []string{"refresh"}, field: FieldRefreshRate},
	{contains: []string{"protection", "glass"}, field: FieldDisplayProtection},
	{contains: []string{"rear camera", "main camera"}, field: FieldMainCamera},
	{contains: []string{"front camera", "selfie"}, field: FieldSelfieCamera},
	{contains: []string{"video"}, field: FieldVideo},
	{contains: []string{"wifi", "wi-fi", "wi‑fi"}, field: FieldWLAN},
	{contains: []string{"bluetooth"}, field: FieldBluetooth},
	{contains: []string{"nfc"}, field: FieldNFC},
	{contains: []string{"usb"}, field: FieldUSB},
	{contains: []string{"positioning", "gps"}, field: FieldPositioning},
	{contains: []string{"fingerprint", "biometric"}, field: FieldBiometrics},
	{contains: []string{"ip rating", "water resist"}, field: FieldIPRating},
	{contains: []string{"brand", "manufacturer"}, field: FieldBrand},
	{contains: []string{"dimensions"}, field: FieldDimensions},
}

// categoryRule maps a label to a coarse category by substring.
type categoryRule struct {
	contains []string
	category domain.Category
}

// categoryRules is evaluated top to bottom; the first match wins, so a label
// like "screen resolution" lands in display even though "resolution" alone
// would also match. Unmatched labels fall through to CategoryOther.
var categoryRules = []categoryRule{
	{contains: []string{"display", "screen", "resolution"}, category: domain.CategoryDisplay},
	{contains: []string{"cpu", "processor", "chipset", "ram", "memory", "storage"}, category: domain.CategoryHardware},
	{contains: []string{"camera", "video"}, category: domain.CategoryCamera},
	{contains: []string{"battery", "charging"}, category: domain.CategoryBattery},
	{contains: []string{"network", "connectivity", "wifi", "bluetooth", "usb"}, category: domain.CategoryConnectivity},
}

// ClassifyField maps a row label to a specific PhoneSpec field, or FieldNone
// when the label is not recognized. Total and deterministic for any input.
func ClassifyField(label string) FieldName {
	label = normalizeLabel(label)
	for _, rule := range fieldRules {
		for _, e := range rule.exact {
			if label == e {
				return rule.field
			}
		}
		for _, c := range rule.contains {
			if strings.Contains(label, c) {
				return rule.field
			}
		}
	}
	return FieldNone
}

// ClassifyCategory maps a row label to one of the six coarse categories.
// Total: every label maps to exactly one category.
func ClassifyCategory(label string) domain.Category {
	label = normalizeLabel(label)
	for _, rule := range categoryRules {
		for _, c := range rule.contains {
			if strings.Contains(label, c) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// fieldCategory fixes category membership per field at design time; it is
// never re-derived from row text.
var fieldCategory = map[FieldName]domain.Category{
	FieldDisplayType:       domain.CategoryDisplay,
	FieldDisplayResolution: domain.CategoryDisplay,
	FieldRefreshRate:       domain.CategoryDisplay,
	FieldDisplayProtection: domain.CategoryDisplay,

	FieldOS:       domain.CategoryHardware,
	FieldChipset:  domain.CategoryHardware,
	FieldCPU:      domain.CategoryHardware,
	FieldGPU:      domain.CategoryHardware,
	FieldRAM:      domain.CategoryHardware,
	FieldStorage:  domain.CategoryHardware,
	FieldCardSlot: domain.CategoryHardware,

	FieldMainCamera:   domain.CategoryCamera,
	FieldSelfieCamera: domain.CategoryCamera,
	FieldVideo:        domain.CategoryCamera,

	FieldBatteryCapacity: domain.CategoryBattery,
	FieldCharging:        domain.CategoryBattery,

	FieldWLAN:        domain.CategoryConnectivity,
	FieldBluetooth:   domain.CategoryConnectivity,
	FieldPositioning: domain.CategoryConnectivity,
	FieldNFC:         domain.CategoryConnectivity,
	FieldUSB:         domain.CategoryConnectivity,

	FieldBiometrics: domain.CategoryOther,
	FieldIPRating:   domain.CategoryOther,
	FieldOSUpdates:  domain.CategoryOther,
	FieldBrand:      domain.CategoryOther,
}

// FieldCategory returns the fixed category a field belongs to.
func FieldCategory(field FieldName) domain.Category {
	if c, ok := fieldCategory[field]; ok {
		return c
	}
	return domain.CategoryOther
}
