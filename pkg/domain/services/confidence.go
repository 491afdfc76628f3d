package services

import (
	"strings"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// UnknownConfidence replaces missing confidence labels
const UnknownConfidence = "desconocida"

// DominantConfidence returns the most frequent normalized confidence label.
// Ties go to the label seen first. ok is false for an empty input.
func DominantConfidence(forecasts []entities.DemandForecastPoint) (label string, ok bool) {
	if len(forecasts) == 0 {
		return "", false
	}

	counts := make(map[string]int)
	var order []string
	for _, f := range forecasts {
		key := f.Confidence
		if key == "" {
			key = UnknownConfidence
		}
		key = strings.ToLower(key)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return best, true
}
