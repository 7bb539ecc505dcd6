// Package monitor samples machine-wide CPU, memory, and GPU utilization
// while a single blocking request is in flight.
package monitor

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/atomic"
)

// Sample is one utilization reading. All values are percentages.
type Sample struct {
	CPU float64
	Mem float64
	GPU float64
}

// Usage is a set of window-averaged utilization percentages.
type Usage struct {
	CPU float64 `json:"cpu"`
	Mem float64 `json:"mem"`
	GPU float64 `json:"gpu"`
}

// Sampler collects one utilization sample per interval on a background
// goroutine. Usage pattern: Start, issue the blocking request, Stop,
// then read Samples or Average. Stop joins the goroutine, so the sample
// slice is never read while it is being appended to. The stop flag is
// checked at the top of the loop, so the window may overshoot the
// request by up to one interval.
type Sampler struct {
	interval time.Duration
	stop     *atomic.Bool
	wg       sync.WaitGroup
	samples  []Sample

	cpuPercent func(time.Duration) (float64, error)
	memPercent func() (float64, error)
	gpuPercent func() float64
}

// NewSampler returns a Sampler reading real machine utilization at the
// given interval.
func NewSampler(interval time.Duration) *Sampler {
	return NewSamplerWithProbes(interval, cpuPercent, memPercent, GPUPercent)
}

// NewSamplerWithProbes returns a Sampler using the given probe functions
// in place of real machine readings. The cpu probe must block for the
// duration it is handed; it paces the loop.
func NewSamplerWithProbes(interval time.Duration,
	cpu func(time.Duration) (float64, error),
	mem func() (float64, error),
	gpu func() float64) *Sampler {
	return &Sampler{
		interval:   interval,
		stop:       atomic.NewBool(false),
		cpuPercent: cpu,
		memPercent: mem,
		gpuPercent: gpu,
	}
}

// Start launches the sampling goroutine. Exactly one request may be in
// flight per Sampler; a Sampler is not reusable after Stop.
func (s *Sampler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for !s.stop.Load() {
			// cpuPercent blocks for the full interval while it measures.
			c, err := s.cpuPercent(s.interval)
			if err != nil {
				c = 0
			}
			m, err := s.memPercent()
			if err != nil {
				m = 0
			}
			s.samples = append(s.samples, Sample{CPU: c, Mem: m, GPU: s.gpuPercent()})
		}
	}()
}

// Stop signals the goroutine and blocks until it exits.
func (s *Sampler) Stop() {
	s.stop.Store(true)
	s.wg.Wait()
}

// Samples returns the collected readings. Only valid after Stop.
func (s *Sampler) Samples() []Sample {
	return s.samples
}

// Average reduces the collected readings to window means. An empty
// window (stopped before the first sample completed) averages to zero.
// Only valid after Stop.
func (s *Sampler) Average() Usage {
	if len(s.samples) == 0 {
		return Usage{}
	}
	var u Usage
	for _, sm := range s.samples {
		u.CPU += sm.CPU
		u.Mem += sm.Mem
		u.GPU += sm.GPU
	}
	n := float64(len(s.samples))
	u.CPU /= n
	u.Mem /= n
	u.GPU /= n
	return u
}

// MeasureBaseline samples idle utilization for the warm-up window and
// returns the averaged result. It runs before any query so the reading
// reflects the machine at rest.
func MeasureBaseline(interval, warmup time.Duration) Usage {
	s := NewSampler(interval)
	s.Start()
	time.Sleep(warmup)
	s.Stop()
	return s.Average()
}

func cpuPercent(interval time.Duration) (float64, error) {
	vals, err := cpu.Percent(interval, false)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, nil
	}
	return vals[0], nil
}

func memPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}
