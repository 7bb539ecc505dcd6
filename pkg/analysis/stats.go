package analysis

import (
	"fmt"
	"math"

	"github.com/llmbs/llmbs/pkg/bench"
	"github.com/llmbs/llmbs/pkg/monitor"
)

// Metrics lists the tracked per-record metrics in report order.
var Metrics = []string{"duration", "eval_duration", "load_duration", "avg_cpu", "avg_mem", "avg_gpu"}

// zScore95 is the two-sided normal critical value for a 95% interval.
const zScore95 = 1.96

// emptyCI is rendered when no record supplies a metric at all.
const emptyCI = "[0, 0]"

// MetricStats are the aggregates for one metric of one model.
type MetricStats struct {
	Mean   float64
	Median float64
	Std    float64
	CI     string
}

// ModelStats is the full per-model aggregate. It is recomputed on every
// analyzer invocation and never persisted.
type ModelStats struct {
	Count       int
	FailureRate float64
	Metrics     map[string]MetricStats
}

// ComputeStats aggregates a model's flattened record sequence. A metric
// value joins its aggregate only when the record carries that key;
// absent keys are excluded rather than defaulted to 0. A record without
// a done flag counts as successful. The confidence interval deliberately
// uses the total record count as n for every metric, even when a metric
// has fewer non-missing values (kept for compatibility with existing
// reports). When subtractBaseline is set and the run carries a baseline,
// the idle averages are subtracted from the utilization metrics before
// aggregation.
func ComputeStats(records []bench.QueryRecord, baseline *monitor.Usage, subtractBaseline bool) ModelStats {
	total := len(records)
	stats := ModelStats{
		Count:   total,
		Metrics: make(map[string]MetricStats, len(Metrics)),
	}

	for _, metric := range Metrics {
		offset := 0.0
		if subtractBaseline && baseline != nil {
			offset = baselineOffset(metric, baseline)
		}
		g := &statGroup{}
		for _, rec := range records {
			if v := metricValue(&rec, metric); v != nil {
				g.push(*v - offset)
			}
		}
		stats.Metrics[metric] = summarize(g, total)
	}

	failures := 0
	for _, rec := range records {
		if rec.Done != nil && !*rec.Done {
			failures++
		}
	}
	if total > 0 {
		stats.FailureRate = float64(failures) / float64(total) * 100
	}
	return stats
}

func summarize(g *statGroup, totalRecords int) MetricStats {
	if g.count == 0 {
		return MetricStats{CI: emptyCI}
	}
	half := zScore95 * g.stdDev / math.Sqrt(float64(totalRecords))
	return MetricStats{
		Mean:   g.mean,
		Median: g.median(),
		Std:    g.stdDev,
		CI:     fmt.Sprintf("[%.2f, %.2f]", g.mean-half, g.mean+half),
	}
}

func metricValue(rec *bench.QueryRecord, metric string) *float64 {
	switch metric {
	case "duration":
		return rec.Duration
	case "eval_duration":
		return rec.EvalDuration
	case "load_duration":
		return rec.LoadDuration
	case "avg_cpu":
		return rec.AvgCPU
	case "avg_mem":
		return rec.AvgMem
	case "avg_gpu":
		return rec.AvgGPU
	}
	return nil
}

func baselineOffset(metric string, baseline *monitor.Usage) float64 {
	switch metric {
	case "avg_cpu":
		return baseline.CPU
	case "avg_mem":
		return baseline.Mem
	case "avg_gpu":
		return baseline.GPU
	}
	return 0
}
