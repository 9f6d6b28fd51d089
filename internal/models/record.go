package models

// Column names of the initiative spreadsheet
const (
	ColLocation      = "Location"
	ColScenario      = "Scenario_Analysis"
	ColInitiative    = "Initiative_Name"
	ColCostSaving    = "Cost_Saving"
	ColGHGMitigated  = "GHG_Mitigated"
	ColMIRR          = "MIRR"
	ColAlignment     = "Alignment_with_Government_Target"
	ColCustomization = "Customization_Required"
	ColSellable      = "Sellable_to_Other_Companies"
)

// RequiredColumns lists every column the dashboard reads, in export order.
var RequiredColumns = []string{
	ColLocation,
	ColScenario,
	ColInitiative,
	ColCostSaving,
	ColGHGMitigated,
	ColMIRR,
	ColAlignment,
	ColCustomization,
	ColSellable,
}

// NumericColumns are decoded as float64, everything else stays text.
var NumericColumns = map[string]bool{
	ColCostSaving:   true,
	ColGHGMitigated: true,
	ColMIRR:         true,
}

// Record is one sustainability initiative
type Record struct {
	Location      string  `json:"Location"`
	Scenario      string  `json:"Scenario_Analysis"`
	Initiative    string  `json:"Initiative_Name"`
	CostSaving    float64 `json:"Cost_Saving"`
	GHGMitigated  float64 `json:"GHG_Mitigated"`
	MIRR          float64 `json:"MIRR"`
	Alignment     string  `json:"Alignment_with_Government_Target"`
	Customization string  `json:"Customization_Required"`
	Sellable      string  `json:"Sellable_to_Other_Companies"`
}

// Text returns the value of a categorical column.
func (r Record) Text(column string) (string, bool) {
	switch column {
	case ColLocation:
		return r.Location, true
	case ColScenario:
		return r.Scenario, true
	case ColInitiative:
		return r.Initiative, true
	case ColAlignment:
		return r.Alignment, true
	case ColCustomization:
		return r.Customization, true
	case ColSellable:
		return r.Sellable, true
	}
	return "", false
}

// Number returns the value of a numeric column.
func (r Record) Number(column string) (float64, bool) {
	switch column {
	case ColCostSaving:
		return r.CostSaving, true
	case ColGHGMitigated:
		return r.GHGMitigated, true
	case ColMIRR:
		return r.MIRR, true
	}
	return 0, false
}

// Dataset is the table loaded at startup. It is never mutated after load.
type Dataset struct {
	Source  string
	Columns []string
	Records []Record
	Quality []ColumnProfile
}

// ColumnProfile summarises the raw cells of one required column as loaded.
type ColumnProfile struct {
	Column   string  `json:"column"`
	Rows     int     `json:"rows"`
	Blank    int     `json:"blank"`
	Invalid  int     `json:"invalid"` // non-numeric cells in a numeric column
	Distinct int     `json:"distinct"`
	NullRate float64 `json:"null_rate"`
	Entropy  float64 `json:"entropy"`
}

// Coerced is the number of cells that decoded to 0 instead of a number.
func (p ColumnProfile) Coerced() int {
	if !NumericColumns[p.Column] {
		return 0
	}
	return p.Blank + p.Invalid
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// FilteredView is the subset of a Dataset that satisfies a FilterSpec.
type FilteredView struct {
	Records []Record
}

func (v FilteredView) Len() int { return len(v.Records) }
