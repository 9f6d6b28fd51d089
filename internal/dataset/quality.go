package dataset

import (
	"math"
	"strconv"

	"netzero-nexus/internal/models"
)

// Profile computes quality metrics for each required column of the raw
// (normalised) rows. It counts what Decode silently coerces.
func Profile(header []string, body [][]string) []models.ColumnProfile {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	profiles := make([]models.ColumnProfile, 0, len(models.RequiredColumns))
	for _, col := range models.RequiredColumns {
		idx, ok := index[col]
		if !ok {
			continue
		}
		profiles = append(profiles, profileColumn(col, idx, body))
	}
	return profiles
}

func profileColumn(col string, idx int, body [][]string) models.ColumnProfile {
	profile := models.ColumnProfile{
		Column: col,
		Rows:   len(body),
	}

	counts := make(map[string]int)
	nonNull := 0
	numeric := models.NumericColumns[col]
	for _, row := range body {
		value := row[idx]
		if isNull(value, numeric) {
			profile.Blank++
			continue
		}
		if numeric {
			// Decode reads unparsable and non-finite cells as 0
			v, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				profile.Invalid++
				continue
			}
		}
		nonNull++
		counts[value]++
	}

	profile.Distinct = len(counts)
	if profile.Rows > 0 {
		profile.NullRate = float64(profile.Blank) / float64(profile.Rows)
	}
	profile.Entropy = entropy(counts, nonNull)
	return profile
}

// isNull reports a missing cell. Null tokens only count in numeric
// columns; in text columns they decode as ordinary categories.
func isNull(v string, numeric bool) bool {
	if v == "" {
		return true
	}
	if !numeric {
		return false
	}
	switch v {
	case "null", "NULL", "None", "NaN", "nan":
		return true
	}
	return false
}

// entropy is the Shannon entropy of the value distribution, in bits.
func entropy(counts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, n := range counts {
		p := float64(n) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}
