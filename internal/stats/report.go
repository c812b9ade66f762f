package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs     []model.RunAggregate
	Elements []model.ElementAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	elements, err := st.ListElementAggregates(ctx, runIDs(runs))
	if err != nil {
		return Report{}, err
	}
	elements = SortWeakest(elements)
	if cfg.Top > 0 && len(elements) > cfg.Top {
		elements = elements[:cfg.Top]
	}
	return Report{Runs: runs, Elements: elements}, nil
}

// Render writes the full report. names maps symbols to element names.
func (r Report) Render(w io.Writer, names map[string]string) error {
	if err := RenderSummary(w, r.Runs); err != nil {
		return err
	}
	if len(r.Runs) == 0 {
		return nil
	}
	if err := RenderRuns(w, r.Runs); err != nil {
		return err
	}
	if err := RenderElementTable(w, r.Elements, names); err != nil {
		return err
	}
	if weakest := WeakestElements(r.Elements, 5); len(weakest) > 0 {
		if _, err := fmt.Fprintf(w, "Weakest: %s\n", strings.Join(weakest, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func runIDs(runs []model.RunAggregate) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.RunID
	}
	return ids
}
