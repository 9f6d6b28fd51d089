package models

// FilterSpec holds the sidebar selections for one render pass.
// An empty selection for a categorical column matches no record.
type FilterSpec struct {
	Locations      []string `json:"location" yaml:"location"`
	Scenarios      []string `json:"scenario" yaml:"scenario"`
	Initiatives    []string `json:"initiative" yaml:"initiative"`
	Alignments     []string `json:"alignment" yaml:"alignment"`
	Customizations []string `json:"customization" yaml:"customization"`
	Sellable       []string `json:"sellable" yaml:"sellable"`
	CostMin        float64  `json:"cost_min" yaml:"cost_min"`
	CostMax        float64  `json:"cost_max" yaml:"cost_max"`
}

// Selections pairs every categorical column with its selected values.
func (s FilterSpec) Selections() map[string][]string {
	return map[string][]string{
		ColLocation:      s.Locations,
		ColScenario:      s.Scenarios,
		ColInitiative:    s.Initiatives,
		ColAlignment:     s.Alignments,
		ColCustomization: s.Customizations,
		ColSellable:      s.Sellable,
	}
}

// FilterOptions are the widget domains discovered from the loaded dataset
type FilterOptions struct {
	Locations      []string `json:"location"`
	Scenarios      []string `json:"scenario"`
	Initiatives    []string `json:"initiative"`
	Alignments     []string `json:"alignment"`
	Customizations []string `json:"customization"`
	Sellable       []string `json:"sellable"`
	CostMax        float64  `json:"cost_max"`
}
