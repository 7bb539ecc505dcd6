package analysis

import (
	"math"
	"sort"
)

// statGroup collects streaming summary statistics for one metric.
// Stddev uses the Welford update with the sample (n-1) denominator and
// reads 0 until there are at least two observations.
type statGroup struct {
	min    float64
	max    float64
	mean   float64
	sum    float64
	values []float64

	// used for stddev calculations
	m      float64
	s      float64
	stdDev float64

	count int64
}

// push updates a statGroup with a new value.
func (s *statGroup) push(n float64) {
	if s.count == 0 {
		s.min = n
		s.max = n
		s.mean = n
		s.count = 1
		s.sum = n

		s.m = n
		s.s = 0.0
		s.stdDev = 0.0
		s.values = append(s.values, n)
		return
	}

	if n < s.min {
		s.min = n
	}
	if n > s.max {
		s.max = n
	}

	s.sum += n

	// constant-space mean update:
	sum := s.mean*float64(s.count) + n
	s.mean = sum / float64(s.count+1)
	s.values = append(s.values, n)
	s.count++

	oldM := s.m
	s.m += (n - oldM) / float64(s.count)
	s.s += (n - oldM) * (n - s.m)
	s.stdDev = math.Sqrt(s.s / (float64(s.count) - 1.0))
}

// median returns the median of the pushed values.
func (s *statGroup) median() float64 {
	sort.Float64s(s.values)
	if s.count == 0 {
		return 0
	} else if s.count%2 == 0 {
		idx := s.count / 2
		return (s.values[idx] + s.values[idx-1]) / 2.0
	} else {
		return s.values[s.count/2]
	}
}
