package stats

import (
	"sort"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

// SortWeakest orders aggregates by ascending accuracy, then by most misses.
func SortWeakest(aggs []model.ElementAggregate) []model.ElementAggregate {
	out := make([]model.ElementAggregate, len(aggs))
	copy(out, aggs)
	sort.Slice(out, func(i, j int) bool {
		ai := Accuracy(out[i].Counts)
		aj := Accuracy(out[j].Counts)
		if ai != aj {
			return ai < aj
		}
		if out[i].Counts.Incorrect != out[j].Counts.Incorrect {
			return out[i].Counts.Incorrect > out[j].Counts.Incorrect
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// WeakestElements returns up to top symbols with the lowest accuracy.
func WeakestElements(aggs []model.ElementAggregate, top int) []string {
	sorted := SortWeakest(aggs)
	if top <= 0 || top > len(sorted) {
		top = len(sorted)
	}
	out := make([]string, 0, top)
	for _, agg := range sorted[:top] {
		out = append(out, agg.Symbol)
	}
	return out
}
