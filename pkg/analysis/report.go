package analysis

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RenderReport writes the transposed statistics table for one result
// file: one row per statistic, one column per model, floats with two
// decimal places. A non-empty label (the run tag) heads the table.
func RenderReport(w io.Writer, label string, models []string, stats map[string]ModelStats) error {
	if label != "" {
		if _, err := fmt.Fprintf(w, "=== %s ===\n", label); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Statistic")
	for _, m := range models {
		fmt.Fprintf(tw, "\t%s", m)
	}
	fmt.Fprintln(tw)

	fmt.Fprint(tw, "Count")
	for _, m := range models {
		fmt.Fprintf(tw, "\t%d", stats[m].Count)
	}
	fmt.Fprintln(tw)

	fmt.Fprint(tw, "Failure Rate (%)")
	for _, m := range models {
		fmt.Fprintf(tw, "\t%.2f", stats[m].FailureRate)
	}
	fmt.Fprintln(tw)

	for _, metric := range Metrics {
		writeRow(tw, metric+" mean", models, func(m string) string {
			return fmt.Sprintf("%.2f", stats[m].Metrics[metric].Mean)
		})
		writeRow(tw, metric+" median", models, func(m string) string {
			return fmt.Sprintf("%.2f", stats[m].Metrics[metric].Median)
		})
		writeRow(tw, metric+" std", models, func(m string) string {
			return fmt.Sprintf("%.2f", stats[m].Metrics[metric].Std)
		})
		writeRow(tw, metric+" 95% CI", models, func(m string) string {
			return stats[m].Metrics[metric].CI
		})
	}
	return tw.Flush()
}

func writeRow(w io.Writer, row string, models []string, cell func(model string) string) {
	fmt.Fprint(w, row)
	for _, m := range models {
		fmt.Fprintf(w, "\t%s", cell(m))
	}
	fmt.Fprintln(w)
}
