// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

// Accuracy returns the share of answers that were exactly correct.
func Accuracy(c model.Counts) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(total)
}

// RenderSummary prints a summary block for runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var total model.Counts
	var duration int64
	bestStreak := 0
	for _, r := range runs {
		total.Correct += r.Counts.Correct
		total.Close += r.Counts.Close
		total.Incorrect += r.Counts.Incorrect
		duration += r.DurationMs
		if r.BestStreak > bestStreak {
			bestStreak = r.BestStreak
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Questions: %d", total.Total()),
		fmt.Sprintf("Correct: %d  Close: %d  Incorrect: %d", total.Correct, total.Close, total.Incorrect),
		fmt.Sprintf("Accuracy: %.2f%%", Accuracy(total)*100),
		fmt.Sprintf("Best streak: %d", bestStreak),
		fmt.Sprintf("Time: %s", (time.Duration(duration) * time.Millisecond).Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRuns prints one line per run, oldest first.
func RenderRuns(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Runs"); err != nil {
		return err
	}
	headers := []string{"Ended", "Correct", "Close", "Incorrect", "Accuracy", "Best"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.Counts.Correct),
			fmt.Sprintf("%d", r.Counts.Close),
			fmt.Sprintf("%d", r.Counts.Incorrect),
			fmt.Sprintf("%.1f%%", Accuracy(r.Counts)*100),
			fmt.Sprintf("%d", r.BestStreak),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range fitLines(formatTable(headers, rows, rightAlign), OutputWidth(w)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderElementTable prints per-element aggregates, weakest first.
func RenderElementTable(w io.Writer, aggs []model.ElementAggregate, names map[string]string) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No element stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Element"); err != nil {
		return err
	}
	headers := []string{"Symbol", "Name", "Accuracy", "Correct", "Close", "Incorrect"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range SortWeakest(aggs) {
		rows = append(rows, []string{
			agg.Symbol,
			names[agg.Symbol],
			fmt.Sprintf("%.2f%%", Accuracy(agg.Counts)*100),
			fmt.Sprintf("%d", agg.Counts.Correct),
			fmt.Sprintf("%d", agg.Counts.Close),
			fmt.Sprintf("%d", agg.Counts.Incorrect),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range fitLines(formatTable(headers, rows, rightAlign), OutputWidth(w)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderPool prints the elements of a pool with their quiz facts.
func RenderPool(w io.Writer, elements []model.Element) error {
	if len(elements) == 0 {
		_, err := fmt.Fprintln(w, "No elements match the filter.")
		return err
	}
	headers := []string{"#", "Symbol", "Name", "Group", "Period", "Family", "Charge"}
	rows := make([][]string, 0, len(elements))
	for _, el := range elements {
		group := "-"
		if el.HasGroup() {
			group = fmt.Sprintf("%d", el.Group)
		}
		charge := "-"
		if el.HasCharge() {
			charge = fmt.Sprintf("%+d", *el.Charge)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", el.Number),
			el.Symbol,
			el.Name,
			group,
			fmt.Sprintf("%d", el.Period),
			string(el.Family),
			charge,
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 6: true}
	for _, line := range fitLines(formatTable(headers, rows, rightAlign), OutputWidth(w)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d elements\n", len(elements))
	return err
}
