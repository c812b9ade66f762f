package stats

import (
	"testing"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

func TestWeakestElements(t *testing.T) {
	aggs := []model.ElementAggregate{
		{Symbol: "H", Counts: model.Counts{Correct: 4}},
		{Symbol: "Fe", Counts: model.Counts{Correct: 1, Incorrect: 3}},
		{Symbol: "Cu", Counts: model.Counts{Correct: 1, Close: 1, Incorrect: 2}},
		{Symbol: "Ag", Counts: model.Counts{Correct: 1, Incorrect: 3}},
	}
	got := WeakestElements(aggs, 3)
	want := []string{"Ag", "Fe", "Cu"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if all := WeakestElements(aggs, 0); len(all) != 4 {
		t.Fatalf("top 0 should return all, got %v", all)
	}
	if aggs[0].Symbol != "H" {
		t.Fatalf("input slice reordered")
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(model.Counts{}); got != 0 {
		t.Fatalf("empty accuracy = %v", got)
	}
	if got := Accuracy(model.Counts{Correct: 1, Close: 1, Incorrect: 2}); got != 0.25 {
		t.Fatalf("accuracy = %v, want 0.25", got)
	}
}
