package monitor

import "testing"

func TestAverageGPULines(t *testing.T) {
	cases := []struct {
		desc string
		out  string
		want float64
	}{
		{"two devices", "42\n58\n", 50},
		{"one device", " 7 \n", 7},
		{"garbage", "N/A\n[Not Supported]\n", 0},
		{"mixed", "30\nN/A\n", 30},
		{"empty", "", 0},
	}
	for _, c := range cases {
		if got := averageGPULines(c.out); got != c.want {
			t.Errorf("%s: got %v, want %v", c.desc, got, c.want)
		}
	}
}

func TestGPUPercentDegradesSilently(t *testing.T) {
	// With or without an NVIDIA stack present this must not error out
	// and must stay a sane percentage.
	if got := GPUPercent(); got < 0 || got > 100 {
		t.Errorf("got %v, want a value in [0, 100]", got)
	}
}
