package dataset

import (
	"netzero-nexus/internal/models"
)

// Options discovers the sidebar widget domains: distinct values of each
// categorical column in first-appearance order and the largest cost saving.
func Options(ds *models.Dataset) models.FilterOptions {
	opts := models.FilterOptions{
		Locations:      []string{},
		Scenarios:      []string{},
		Initiatives:    []string{},
		Alignments:     []string{},
		Customizations: []string{},
		Sellable:       []string{},
	}
	if ds.Len() == 0 {
		return opts
	}

	targets := []struct {
		column string
		values *[]string
	}{
		{models.ColLocation, &opts.Locations},
		{models.ColScenario, &opts.Scenarios},
		{models.ColInitiative, &opts.Initiatives},
		{models.ColAlignment, &opts.Alignments},
		{models.ColCustomization, &opts.Customizations},
		{models.ColSellable, &opts.Sellable},
	}

	for _, t := range targets {
		seen := make(map[string]bool)
		for _, r := range ds.Records {
			v, _ := r.Text(t.column)
			if !seen[v] {
				seen[v] = true
				*t.values = append(*t.values, v)
			}
		}
	}

	opts.CostMax = ds.Records[0].CostSaving
	for _, r := range ds.Records[1:] {
		if r.CostSaving > opts.CostMax {
			opts.CostMax = r.CostSaving
		}
	}
	return opts
}
