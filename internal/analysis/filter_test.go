package analysis

import (
	"testing"

	"netzero-nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *models.Dataset {
	return &models.Dataset{Records: []models.Record{
		{Location: "A", Scenario: "Base", Initiative: "Solar", CostSaving: 10, GHGMitigated: 5, MIRR: 0.1, Alignment: "Yes", Customization: "No", Sellable: "Yes"},
		{Location: "A", Scenario: "Stretch", Initiative: "Wind", CostSaving: 20, GHGMitigated: 15, MIRR: 0.2, Alignment: "No", Customization: "Yes", Sellable: "Yes"},
		{Location: "B", Scenario: "Base", Initiative: "Solar", CostSaving: 5, GHGMitigated: 2, MIRR: 0.3, Alignment: "Yes", Customization: "No", Sellable: "No"},
		{Location: "C", Scenario: "Base", Initiative: "Heat Pump", CostSaving: 40, GHGMitigated: 8, MIRR: 0.05, Alignment: "Partial", Customization: "No", Sellable: "No"},
	}}
}

func allOptions() models.FilterOptions {
	return models.FilterOptions{
		Locations:      []string{"A", "B", "C"},
		Scenarios:      []string{"Base", "Stretch"},
		Initiatives:    []string{"Solar", "Wind", "Heat Pump"},
		Alignments:     []string{"Yes", "No", "Partial"},
		Customizations: []string{"No", "Yes"},
		Sellable:       []string{"Yes", "No"},
		CostMax:        40,
	}
}

func TestFilter_SelectAllKeepsEverything(t *testing.T) {
	ds := sampleDataset()
	view := Filter(ds, SelectAll(allOptions()))
	assert.Equal(t, ds.Records, view.Records)
}

func TestFilter_LocationScenario(t *testing.T) {
	ds := &models.Dataset{Records: []models.Record{
		{Location: "A", CostSaving: 10, GHGMitigated: 5},
		{Location: "A", CostSaving: 20, GHGMitigated: 15},
		{Location: "B", CostSaving: 5, GHGMitigated: 2},
	}}
	spec := models.FilterSpec{
		Locations:      []string{"A"},
		Scenarios:      []string{""},
		Initiatives:    []string{""},
		Alignments:     []string{""},
		Customizations: []string{""},
		Sellable:       []string{""},
		CostMin:        0,
		CostMax:        100,
	}

	view := Filter(ds, spec)
	require.Equal(t, 2, view.Len())

	total, err := TotalAndMean(view, models.ColGHGMitigated)
	require.NoError(t, err)
	assert.Equal(t, 20.0, total.Sum)

	groups, err := GroupSum(view, models.ColLocation, models.ColGHGMitigated)
	require.NoError(t, err)
	assert.Equal(t, []models.GroupTotal{{Group: "A", Total: 20}}, groups)
}

func TestFilter_EmptySelectionMatchesNothing(t *testing.T) {
	ds := sampleDataset()
	clears := map[string]func(*models.FilterSpec){
		"location":      func(s *models.FilterSpec) { s.Locations = nil },
		"scenario":      func(s *models.FilterSpec) { s.Scenarios = nil },
		"initiative":    func(s *models.FilterSpec) { s.Initiatives = []string{} },
		"alignment":     func(s *models.FilterSpec) { s.Alignments = nil },
		"customization": func(s *models.FilterSpec) { s.Customizations = nil },
		"sellable":      func(s *models.FilterSpec) { s.Sellable = nil },
	}

	for name, reset := range clears {
		t.Run(name, func(t *testing.T) {
			spec := SelectAll(allOptions())
			reset(&spec)
			assert.Equal(t, 0, Filter(ds, spec).Len())
		})
	}

	assert.Equal(t, 0, Filter(ds, models.FilterSpec{CostMax: 1000}).Len())
}

func TestFilter_CostRangeInclusive(t *testing.T) {
	ds := sampleDataset()
	spec := SelectAll(allOptions())
	spec.CostMin = 10
	spec.CostMax = 20

	view := Filter(ds, spec)
	require.Equal(t, 2, view.Len())
	assert.Equal(t, 10.0, view.Records[0].CostSaving)
	assert.Equal(t, 20.0, view.Records[1].CostSaving)

	spec.CostMin, spec.CostMax = 30, 20
	assert.Equal(t, 0, Filter(ds, spec).Len(), "inverted range")
}

func TestFilter_ConjunctionLaw(t *testing.T) {
	ds := sampleDataset()
	specs := []models.FilterSpec{
		SelectAll(allOptions()),
		{Locations: []string{"A", "C"}, Scenarios: []string{"Base"}, Initiatives: []string{"Solar", "Heat Pump"},
			Alignments: []string{"Yes", "Partial"}, Customizations: []string{"No"}, Sellable: []string{"Yes", "No"}, CostMin: 0, CostMax: 50},
		{Locations: []string{"B"}, Scenarios: []string{"Stretch"}, Initiatives: []string{"Solar"},
			Alignments: []string{"Yes"}, Customizations: []string{"No"}, Sellable: []string{"No"}, CostMin: 0, CostMax: 50},
	}

	for _, spec := range specs {
		view := Filter(ds, spec)
		kept := 0
		for _, r := range ds.Records {
			if Matches(spec, r) {
				require.Less(t, kept, view.Len())
				assert.Equal(t, r, view.Records[kept])
				kept++
			}
		}
		assert.Equal(t, kept, view.Len())
	}
}

func TestFilter_CaseSensitive(t *testing.T) {
	spec := SelectAll(allOptions())
	spec.Locations = []string{"a"}
	assert.Equal(t, 0, Filter(sampleDataset(), spec).Len())
}

func TestFilter_EmptyDataset(t *testing.T) {
	view := Filter(&models.Dataset{}, SelectAll(allOptions()))
	assert.Equal(t, 0, view.Len())
	assert.NotNil(t, view.Records)
}
