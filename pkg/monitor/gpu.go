package monitor

import (
	"os/exec"
	"strconv"
	"strings"
)

// GPUPercent reads instantaneous GPU utilization averaged across every
// device nvidia-smi reports. Hosts without a usable NVIDIA stack read 0;
// there is no error path.
func GPUPercent() float64 {
	out, err := exec.Command("nvidia-smi",
		"--query-gpu=utilization.gpu", "--format=csv,noheader,nounits").Output()
	if err != nil {
		return 0
	}
	return averageGPULines(string(out))
}

func averageGPULines(out string) float64 {
	var sum float64
	var n int
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
