package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/specwise/backend/internal/domain"
)

// metricRow describes one attribute of the fixed metric comparison, in the
// order the rows appear in the output.
type metricRow struct {
	label string
	pick  func(*domain.DerivedMetrics) *float64
}

var metricRows = []metricRow{
	{"Display size (in)", func(m *domain.DerivedMetrics) *float64 { return m.SizeInches }},
	{"Refresh rate (Hz)", func(m *domain.DerivedMetrics) *float64 { return m.RefreshHz }},
	{"RAM (GB)", func(m *domain.DerivedMetrics) *float64 { return m.RAMGB }},
	{"Storage (GB)", func(m *domain.DerivedMetrics) *float64 { return m.StorageGB }},
	{"Battery (mAh)", func(m *domain.DerivedMetrics) *float64 { return m.BatteryMAh }},
}

// numericWinner applies the uniform per-attribute rule: both absent is a tie,
// a present value always beats an absent one, equal values tie, otherwise the
// larger value wins. Higher is better for every compared metric.
func numericWinner(a, b *float64) domain.Winner {
	switch {
	case a == nil && b == nil:
		return domain.WinnerTie
	case a == nil:
		return domain.WinnerB
	case b == nil:
		return domain.WinnerA
	case *a == *b:
		return domain.WinnerTie
	case *a > *b:
		return domain.WinnerA
	default:
		return domain.WinnerB
	}
}

func formatMetric(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// CompareMetrics compares two derived metric sets attribute by attribute and
// assembles the verdict from the row-level winners. Pure text assembly, no
// further heuristics.
func CompareMetrics(a, b *domain.DerivedMetrics) *domain.ComparisonResult {
	result := &domain.ComparisonResult{NameA: a.Name, NameB: b.Name}

	var ties []string
	for _, row := range metricRows {
		valA, valB := row.pick(a), row.pick(b)
		win := numericWinner(valA, valB)

		result.Rows = append(result.Rows, domain.ComparisonRow{
			Label:  row.label,
			A:      formatMetric(valA),
			B:      formatMetric(valB),
			Winner: win,
		})

		switch win {
		case domain.WinnerA:
			result.WinsA++
			result.LeadsA = append(result.LeadsA, row.label)
		case domain.WinnerB:
			result.WinsB++
			result.LeadsB = append(result.LeadsB, row.label)
		default:
			result.Ties++
			ties = append(ties, row.label)
		}
	}

	result.Verdict = buildVerdict(result, ties)
	return result
}

// buildVerdict names the strictly leading side and the attributes each side
// leads in; equal win counts (including all ties) declare a tie.
func buildVerdict(result *domain.ComparisonResult, ties []string) string {
	var parts []string

	switch {
	case result.WinsA > result.WinsB:
		sentence := fmt.Sprintf("%s leads in %s", result.NameA, strings.Join(result.LeadsA, ", "))
		if len(result.LeadsB) > 0 {
			sentence += fmt.Sprintf("; %s leads in %s", result.NameB, strings.Join(result.LeadsB, ", "))
		}
		parts = append(parts, sentence+".")
	case result.WinsB > result.WinsA:
		sentence := fmt.Sprintf("%s leads in %s", result.NameB, strings.Join(result.LeadsB, ", "))
		if len(result.LeadsA) > 0 {
			sentence += fmt.Sprintf("; %s leads in %s", result.NameA, strings.Join(result.LeadsA, ", "))
		}
		parts = append(parts, sentence+".")
	default:
		parts = append(parts, "It's a tie! Both phones have comparable specifications.")
	}

	if len(ties) > 0 && result.WinsA != result.WinsB {
		parts = append(parts, fmt.Sprintf("Ties: %s.", strings.Join(ties, ", ")))
	}

	return strings.Join(parts, " ")
}

// comparedCategories are the categories scored by the coarse path; "other"
// rows are rendered but never scored.
var comparedCategories = []domain.Category{
	domain.CategoryDisplay,
	domain.CategoryHardware,
	domain.CategoryCamera,
	domain.CategoryBattery,
	domain.CategoryConnectivity,
}

// CompareCategories runs the coarse comparison over the raw category bags of
// two specs. For every label present on either side the raw text is compared:
// a one-sided value beats a missing one, anything else is a tie. This path
// only scores presence, so it stays meaningful when numeric metrics could not
// be extracted.
func CompareCategories(specA, specB *domain.PhoneSpec) *domain.ComparisonResult {
	result := &domain.ComparisonResult{NameA: specA.Name, NameB: specB.Name}

	for _, category := range comparedCategories {
		rowsA := specA.Rows[category]
		rowsB := specB.Rows[category]

		keys := make(map[string]bool, len(rowsA)+len(rowsB))
		for k := range rowsA {
			keys[k] = true
		}
		for k := range rowsB {
			keys[k] = true
		}

		ordered := make([]string, 0, len(keys))
		for k := range keys {
			ordered = append(ordered, k)
		}
		sort.Strings(ordered)

		for _, key := range ordered {
			valA, valB := rowsA[key], rowsB[key]

			win := domain.WinnerTie
			switch {
			case valA == "" && valB == "":
			case valA == "":
				win = domain.WinnerB
			case valB == "":
				win = domain.WinnerA
			}

			if valA == "" {
				valA = "N/A"
			}
			if valB == "" {
				valB = "N/A"
			}

			label := titleizeLabel(key)
			result.Rows = append(result.Rows, domain.ComparisonRow{
				Label:  label,
				A:      valA,
				B:      valB,
				Winner: win,
			})

			switch win {
			case domain.WinnerA:
				result.WinsA++
				result.LeadsA = append(result.LeadsA, label)
			case domain.WinnerB:
				result.WinsB++
				result.LeadsB = append(result.LeadsB, label)
			default:
				result.Ties++
			}
		}
	}

	switch {
	case result.WinsA > result.WinsB:
		result.Verdict = fmt.Sprintf("%s wins with %d advantages over %d!", result.NameA, result.WinsA, result.WinsB)
	case result.WinsB > result.WinsA:
		result.Verdict = fmt.Sprintf("%s wins with %d advantages over %d!", result.NameB, result.WinsB, result.WinsA)
	default:
		result.Verdict = "It's a tie! Both phones have comparable specifications."
	}

	return result
}

// titleizeLabel upper-cases the first letter of a raw row label for display.
func titleizeLabel(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// Compare accepts two parsed specs in either shape and produces consistent
// output: when at least one numeric metric was extracted on either side the
// fixed metric comparison is used, otherwise the coarse category path.
func Compare(specA, specB *domain.PhoneSpec) *domain.ComparisonResult {
	metricsA := DeriveMetrics(specA)
	metricsB := DeriveMetrics(specB)

	if hasAnyMetric(metricsA) || hasAnyMetric(metricsB) {
		return CompareMetrics(metricsA, metricsB)
	}
	if len(specA.Rows) > 0 || len(specB.Rows) > 0 {
		return CompareCategories(specA, specB)
	}
	return CompareMetrics(metricsA, metricsB)
}

func hasAnyMetric(m *domain.DerivedMetrics) bool {
	return m.SizeInches != nil || m.RefreshHz != nil || m.RAMGB != nil ||
		m.StorageGB != nil || m.BatteryMAh != nil
}
