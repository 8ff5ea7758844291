package domain

// Winner tags which side of a comparison row came out ahead.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "tie"
)

// ComparisonRow is one attribute's two-sided value plus its winner tag.
// Values are rendered text; "-" marks an absent metric and "N/A" marks a
// missing raw row.
type ComparisonRow struct {
	Label  string `json:"label"`
	A      string `json:"a"`
	B      string `json:"b"`
	Winner Winner `json:"winner"`
}

// ComparisonResult is the ordered row list plus the aggregate verdict.
// It is a pure function of the two compared specs and is recomputed on
// demand, never stored.
type ComparisonResult struct {
	NameA string `json:"nameA"`
	NameB string `json:"nameB"`

	Rows    []ComparisonRow `json:"rows"`
	Verdict string          `json:"verdict"`

	WinsA int `json:"winsA"`
	WinsB int `json:"winsB"`
	Ties  int `json:"ties"`

	// Labels of the rows each side leads in, in row order.
	LeadsA []string `json:"leadsA,omitempty"`
	LeadsB []string `json:"leadsB,omitempty"`
}
