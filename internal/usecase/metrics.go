package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/specwise/backend/internal/domain"
)

// Unit-anchored patterns for numeric extraction. The first capturing group is
// the value; thousands separators are stripped before matching.
var (
	refreshHzRegex     = regexp.MustCompile(`(?i)(\d{2,3})\s*hz`)
	gigabytesRegex     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*gb`)
	milliampHoursRegex = regexp.MustCompile(`(?i)(\d{3,5})\s*mah`)
)

// DeriveMetrics extracts the numeric comparison metrics from a spec's
// free-text fields. A field that is absent or does not match its pattern
// yields a nil metric — never zero, never an error.
func DeriveMetrics(spec *domain.PhoneSpec) *domain.DerivedMetrics {
	if spec == nil {
		return nil
	}

	name := spec.Name
	if name == "" {
		name = spec.Brand
	}
	if name == "" {
		name = "Device"
	}

	return &domain.DerivedMetrics{
		Name:       name,
		SizeInches: numberFrom(spec.DisplaySize, inchesRegex),
		RefreshHz:  numberFrom(spec.RefreshRate, refreshHzRegex),
		RAMGB:      numberFrom(spec.RAM, gigabytesRegex),
		StorageGB:  numberFrom(spec.Storage, gigabytesRegex),
		BatteryMAh: numberFrom(spec.BatteryCapacity, milliampHoursRegex),
		Chipset:    spec.Chipset,
		CPU:        spec.CPU,
		OS:         spec.OS,
	}
}

// numberFrom applies a unit-anchored pattern to free text and returns the
// first captured number, or nil when the text is absent or does not match.
func numberFrom(text string, pattern *regexp.Regexp) *float64 {
	if text == "" {
		return nil
	}
	m := pattern.FindStringSubmatch(strings.ReplaceAll(text, ",", ""))
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
