package charts

import (
	"io"
	"strings"
	"testing"

	"netzero-nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderer interface {
	Render(w io.Writer) error
}

func renderString(t *testing.T, c renderer) string {
	t.Helper()
	var buf strings.Builder
	require.NoError(t, c.Render(&buf))
	return buf.String()
}

func TestScenarioBar(t *testing.T) {
	bar := ScenarioBar([]models.Frequency{{Category: "Base", Count: 3}, {Category: "Stretch", Count: 1}})
	html := renderString(t, bar)
	assert.Contains(t, html, HeadingScenario)
	assert.Contains(t, html, "Stretch")
	assert.Contains(t, html, `"Frequency"`)
}

func TestAlignmentPie(t *testing.T) {
	pie := AlignmentPie(map[string]int{"Yes": 2, "No": 1, "Partial": 1})
	html := renderString(t, pie)
	assert.Contains(t, html, HeadingAlignment)

	yes := strings.Index(html, `"Yes"`)
	no := strings.Index(html, `"No"`)
	partial := strings.Index(html, `"Partial"`)
	require.True(t, yes >= 0 && no >= 0 && partial >= 0)
	assert.Less(t, yes, no, "largest slice first")
	assert.Less(t, no, partial, "ties ordered by name")
}

func TestInitiativeBar(t *testing.T) {
	bar := InitiativeBar([]models.Frequency{{Category: "Solar", Count: 2}, {Category: "Heat Pump", Count: 1}})
	html := renderString(t, bar)
	assert.Contains(t, html, HeadingInitiative)
	assert.Contains(t, html, "Heat Pump")
}

func TestGHGCostScatter(t *testing.T) {
	scatter := GHGCostScatter([]models.ScatterPoint{
		{X: 5, Y: 10, Color: "Base", Size: 0.1, Label: "Solar"},
		{X: 15, Y: 20, Color: "Stretch", Size: 0.4, Label: "Wind"},
		{X: 2, Y: 5, Color: "Base", Size: 0, Label: "Heat Pump"},
	})
	html := renderString(t, scatter)
	assert.Contains(t, html, HeadingGHGvsCost)
	assert.Contains(t, html, "Stretch")
	assert.Contains(t, html, "Wind")
}

func TestLocationBar(t *testing.T) {
	bar := LocationBar([]models.GroupTotal{{Group: "A", Total: 20}, {Group: "B", Total: 2}})
	html := renderString(t, bar)
	assert.Contains(t, html, HeadingLocationGHG)
	assert.Contains(t, html, "Total GHG Mitigated by Location")
}

func TestRenderers_EmptyInput(t *testing.T) {
	for _, c := range []renderer{
		ScenarioBar(nil),
		AlignmentPie(map[string]int{}),
		InitiativeBar(nil),
		GHGCostScatter(nil),
		LocationBar(nil),
	} {
		assert.NotEmpty(t, renderString(t, c))
	}
}

func TestSymbolSize(t *testing.T) {
	assert.Equal(t, maxSymbolSize, symbolSize(0.4, 0.4))
	assert.Equal(t, 10, symbolSize(0.1, 0.4))
	assert.Equal(t, minSymbolSize, symbolSize(0, 0.4))
	assert.Equal(t, minSymbolSize, symbolSize(-1, 0.4))
	assert.Equal(t, minSymbolSize, symbolSize(0.0001, 0.4))
	assert.Equal(t, minSymbolSize, symbolSize(1, 0))
}

func TestKeyMetrics(t *testing.T) {
	m := NewKeyMetrics(models.Indicator{Title: "Total GHG Mitigated", Value: 20}, models.Indicator{Title: "Total Cost Saving", Value: 30})
	assert.Equal(t, HeadingKeyMetrics, m.Heading)
	assert.Equal(t, 20.0, m.GHG.Value)
	assert.Equal(t, 30.0, m.Cost.Value)
}

func TestPieSlicesOrder(t *testing.T) {
	got := PieSlices(map[string]int{"Yes": 2, "Partial": 1, "No": 1})

	assert.Equal(t, []models.Frequency{
		{Category: "Yes", Count: 2},
		{Category: "No", Count: 1},
		{Category: "Partial", Count: 1},
	}, got)
	assert.Empty(t, PieSlices(nil))
}
