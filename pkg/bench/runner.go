package bench

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"strconv"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/pkg/errors"

	"github.com/llmbs/llmbs/pkg/monitor"
	"github.com/llmbs/llmbs/pkg/ollama"
)

// baselineWarmup is how long the idle-utilization baseline samples for.
const baselineWarmup = 1 * time.Second

// Runner drives the iteration × model × prompt loop against a generate
// endpoint. Requests are strictly sequential: concurrent requests would
// corrupt the per-request utilization window, since sampling is global
// to the machine.
type Runner struct {
	cfg      Config
	gen      ollama.Generator
	progress *ProgressReporter
	hist     *hdrhistogram.Histogram

	newSampler func() *monitor.Sampler
	baseline   func() monitor.Usage
}

// NewRunner builds a Runner using real machine sampling.
func NewRunner(cfg Config, gen ollama.Generator, progress *ProgressReporter) *Runner {
	interval := time.Duration(cfg.SampleInterval * float64(time.Second))
	return &Runner{
		cfg:      cfg,
		gen:      gen,
		progress: progress,
		hist:     hdrhistogram.New(1, int64(time.Hour/time.Microsecond), 3),
		newSampler: func() *monitor.Sampler {
			return monitor.NewSampler(interval)
		},
		baseline: func() monitor.Usage {
			return monitor.MeasureBaseline(interval, baselineWarmup)
		},
	}
}

// Run executes the whole test matrix and returns the accumulated run.
// Any endpoint error aborts the run; nothing collected so far is
// persisted. Exactly one sampler goroutine is alive at a time: each
// request's sampler is stopped and joined before its averages are read
// and before the next request starts.
func (r *Runner) Run(models, queries []string) (*RunResult, error) {
	result := &RunResult{}
	if !r.cfg.SkipBaseline {
		b := r.baseline()
		result.Baseline = &b
	}

	total := len(models) * len(queries) * r.cfg.TestIterations
	completed := 0
	for iteration := 1; iteration <= r.cfg.TestIterations; iteration++ {
		for _, model := range models {
			for queryNum, query := range queries {
				r.progress.Render(completed, total,
					strconv.Itoa(iteration), model, strconv.Itoa(queryNum+1))

				sampler := r.newSampler()
				sampler.Start()
				start := time.Now()
				reply, err := r.gen.Generate(model, query)
				lag := time.Since(start)
				sampler.Stop()
				if err != nil {
					return nil, errors.Wrapf(err, "query failed for model %s", model)
				}
				_ = r.hist.RecordValue(int64(lag / time.Microsecond))

				result.Append(iteration, model,
					newQueryRecord(query, ollama.Decompose(reply), sampler.Average()))
				completed++
			}
		}
	}
	r.progress.Finish(total)
	return result, nil
}

// WriteHDRLatencies saves the HDR histogram of request latencies, in
// milliseconds, to the given file.
func (r *Runner) WriteHDRLatencies(path string) error {
	var b bytes.Buffer
	bw := bufio.NewWriter(&b)
	if _, err := r.hist.PercentilesPrint(bw, 10, 1000.0); err != nil {
		return errors.Wrap(err, "printing latency percentiles")
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return ioutil.WriteFile(path, b.Bytes(), 0644)
}

func newQueryRecord(query string, f ollama.FormattedReply, u monitor.Usage) QueryRecord {
	done := f.Done
	return QueryRecord{
		Query:        query,
		Response:     f.Response,
		Done:         &done,
		DoneReason:   f.DoneReason,
		Duration:     float64Ptr(f.Duration),
		EvalDuration: float64Ptr(f.EvalDuration),
		LoadDuration: float64Ptr(f.LoadDuration),
		AvgCPU:       float64Ptr(u.CPU),
		AvgMem:       float64Ptr(u.Mem),
		AvgGPU:       float64Ptr(u.GPU),
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
