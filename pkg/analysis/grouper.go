// Package analysis turns collector result files into per-model
// descriptive statistics and renders them as a console table.
package analysis

import "github.com/llmbs/llmbs/pkg/bench"

// GroupByModel flattens a run's iterations into one record sequence per
// model: records concatenate in iteration order, then in their original
// within-iteration order. Iteration boundaries are discarded. The
// baseline entry lives outside the iterations and never contributes a
// record. Model names come back in first-seen order so report columns
// are reproducible.
func GroupByModel(run *bench.RunResult) ([]string, map[string][]bench.QueryRecord) {
	var order []string
	grouped := make(map[string][]bench.QueryRecord)
	for _, it := range run.Iterations {
		for _, mr := range it.Models {
			if _, ok := grouped[mr.Model]; !ok {
				order = append(order, mr.Model)
			}
			grouped[mr.Model] = append(grouped[mr.Model], mr.Records...)
		}
	}
	return order, grouped
}
