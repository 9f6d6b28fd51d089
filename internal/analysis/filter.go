package analysis

import (
	"netzero-nexus/internal/models"
)

// compiledSpec is a FilterSpec with lookup sets built once per render pass.
type compiledSpec struct {
	sets             map[string]map[string]bool
	costMin, costMax float64
}

func compile(spec models.FilterSpec) compiledSpec {
	selections := spec.Selections()
	c := compiledSpec{
		sets:    make(map[string]map[string]bool, len(selections)),
		costMin: spec.CostMin,
		costMax: spec.CostMax,
	}
	for col, values := range selections {
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		c.sets[col] = set
	}
	return c
}

// matches is the conjunction of all seven predicates. Membership in an
// empty set is always false.
func (c compiledSpec) matches(r models.Record) bool {
	if r.CostSaving < c.costMin || r.CostSaving > c.costMax {
		return false
	}
	for col, set := range c.sets {
		v, _ := r.Text(col)
		if !set[v] {
			return false
		}
	}
	return true
}

// Matches reports whether a single record satisfies spec.
func Matches(spec models.FilterSpec, r models.Record) bool {
	return compile(spec).matches(r)
}

// Filter returns the records of ds that satisfy every predicate of spec, in
// dataset order. It never fails; an empty view is a valid result.
func Filter(ds *models.Dataset, spec models.FilterSpec) models.FilteredView {
	view := models.FilteredView{Records: []models.Record{}}
	if ds.Len() == 0 {
		return view
	}

	c := compile(spec)
	for _, r := range ds.Records {
		if c.matches(r) {
			view.Records = append(view.Records, r)
		}
	}
	return view
}

// SelectAll builds a FilterSpec that selects every option, with the sidebar's
// default cost range [0, CostMax].
func SelectAll(opts models.FilterOptions) models.FilterSpec {
	return models.FilterSpec{
		Locations:      append([]string(nil), opts.Locations...),
		Scenarios:      append([]string(nil), opts.Scenarios...),
		Initiatives:    append([]string(nil), opts.Initiatives...),
		Alignments:     append([]string(nil), opts.Alignments...),
		Customizations: append([]string(nil), opts.Customizations...),
		Sellable:       append([]string(nil), opts.Sellable...),
		CostMax:        opts.CostMax,
	}
}
