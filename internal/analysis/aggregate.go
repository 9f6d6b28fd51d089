package analysis

import (
	"errors"
	"fmt"
	"sort"

	"netzero-nexus/internal/models"
)

// ErrUnknownColumn is returned when an aggregation names a column outside the schema.
var ErrUnknownColumn = errors.New("unknown column")

// Total is the sum and mean of a numeric column.
// Delta is Sum minus Mean; every field is 0 for an empty view.
type Total struct {
	Sum   float64
	Mean  float64
	Delta float64
}

// TotalAndMean sums a numeric column and derives its mean and delta.
func TotalAndMean(view models.FilteredView, column string) (Total, error) {
	if !models.NumericColumns[column] {
		return Total{}, fmt.Errorf("%w: %q is not numeric", ErrUnknownColumn, column)
	}
	if view.Len() == 0 {
		return Total{}, nil
	}

	sum := 0.0
	for _, r := range view.Records {
		v, _ := r.Number(column)
		sum += v
	}
	mean := sum / float64(view.Len())

	return Total{
		Sum:   sum,
		Mean:  mean,
		Delta: sum - mean,
	}, nil
}

// ValueFrequency counts rows per distinct value of a categorical column.
// Most frequent first; ties keep first-appearance order.
func ValueFrequency(view models.FilteredView, column string) ([]models.Frequency, error) {
	if !isCategorical(column) {
		return nil, fmt.Errorf("%w: %q is not categorical", ErrUnknownColumn, column)
	}

	index := make(map[string]int)
	freqs := []models.Frequency{}
	for _, r := range view.Records {
		v, _ := r.Text(column)
		i, ok := index[v]
		if !ok {
			i = len(freqs)
			index[v] = i
			freqs = append(freqs, models.Frequency{Category: v})
		}
		freqs[i].Count++
	}

	sort.SliceStable(freqs, func(i, j int) bool { return freqs[i].Count > freqs[j].Count })
	return freqs, nil
}

// ValueFrequencyPie is ValueFrequency as a category -> count mapping.
func ValueFrequencyPie(view models.FilteredView, column string) (map[string]int, error) {
	freqs, err := ValueFrequency(view, column)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(freqs))
	for _, f := range freqs {
		counts[f.Category] = f.Count
	}
	return counts, nil
}

// GroupSum sums valueCol per distinct value of groupCol, groups in ascending key order.
func GroupSum(view models.FilteredView, groupCol, valueCol string) ([]models.GroupTotal, error) {
	if !isCategorical(groupCol) {
		return nil, fmt.Errorf("%w: %q is not categorical", ErrUnknownColumn, groupCol)
	}
	if !models.NumericColumns[valueCol] {
		return nil, fmt.Errorf("%w: %q is not numeric", ErrUnknownColumn, valueCol)
	}

	sums := make(map[string]float64)
	for _, r := range view.Records {
		g, _ := r.Text(groupCol)
		v, _ := r.Number(valueCol)
		sums[g] += v
	}

	totals := make([]models.GroupTotal, 0, len(sums))
	for g, v := range sums {
		totals = append(totals, models.GroupTotal{Group: g, Total: v})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Group < totals[j].Group })
	return totals, nil
}

// ScatterProjection maps each record onto the GHG vs. cost plot.
func ScatterProjection(view models.FilteredView) []models.ScatterPoint {
	points := make([]models.ScatterPoint, 0, view.Len())
	for _, r := range view.Records {
		points = append(points, models.ScatterPoint{
			X:     r.GHGMitigated,
			Y:     r.CostSaving,
			Color: r.Scenario,
			Size:  r.MIRR,
			Label: r.Initiative,
		})
	}
	return points
}

// Preview returns at most n leading records.
func Preview(view models.FilteredView, n int) []models.Record {
	if n > view.Len() {
		n = view.Len()
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.Record, n)
	copy(out, view.Records[:n])
	return out
}

func isCategorical(column string) bool {
	_, ok := models.Record{}.Text(column)
	return ok
}
