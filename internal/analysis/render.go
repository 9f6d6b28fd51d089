package analysis

import (
	"fmt"

	"netzero-nexus/internal/models"
)

// DefaultPreviewRows is the size of the filtered-data preview panel.
const DefaultPreviewRows = 10

// Render computes every dashboard section for one render pass. It is a pure
// function of its arguments and is safe to call concurrently on a shared
// Dataset.
func Render(ds *models.Dataset, spec models.FilterSpec, previewRows int) (models.RenderOutput, error) {
	view := Filter(ds, spec)
	out := models.RenderOutput{
		Rows:         view.Len(),
		PreviewLimit: previewRows,
	}

	ghg, err := TotalAndMean(view, models.ColGHGMitigated)
	if err != nil {
		return out, fmt.Errorf("total GHG mitigated: %w", err)
	}
	out.TotalGHG = models.Indicator{Title: "Total GHG Mitigated", Value: ghg.Sum, Mean: ghg.Mean, Delta: ghg.Delta}

	cost, err := TotalAndMean(view, models.ColCostSaving)
	if err != nil {
		return out, fmt.Errorf("total cost saving: %w", err)
	}
	out.TotalCost = models.Indicator{Title: "Total Cost Saving", Value: cost.Sum, Mean: cost.Mean, Delta: cost.Delta}

	if out.Scenarios, err = ValueFrequency(view, models.ColScenario); err != nil {
		return out, fmt.Errorf("scenario frequency: %w", err)
	}
	if out.Alignment, err = ValueFrequencyPie(view, models.ColAlignment); err != nil {
		return out, fmt.Errorf("alignment frequency: %w", err)
	}
	if out.Initiatives, err = ValueFrequency(view, models.ColInitiative); err != nil {
		return out, fmt.Errorf("initiative frequency: %w", err)
	}
	if out.LocationGHG, err = GroupSum(view, models.ColLocation, models.ColGHGMitigated); err != nil {
		return out, fmt.Errorf("GHG by location: %w", err)
	}

	out.Scatter = ScatterProjection(view)
	out.Preview = Preview(view, previewRows)
	return out, nil
}
