package bench

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const (
	barWidth    = 100
	statusLines = 5
)

// ProgressReporter redraws a fixed five-line progress block in place by
// moving the cursor up before every update except the first. It keeps no
// counters of its own; the dispatcher passes the current position on each
// call. Cursor repositioning is skipped when the sink is not a terminal.
type ProgressReporter struct {
	w          io.Writer
	reposition bool
}

// NewProgressReporter returns a reporter writing to w. Set reposition
// only when w is an ANSI-capable terminal.
func NewProgressReporter(w io.Writer, reposition bool) *ProgressReporter {
	return &ProgressReporter{w: w, reposition: reposition}
}

// Render draws the bar plus four status lines for the current position.
func (p *ProgressReporter) Render(completed, total int, iteration, model, queryNum string) {
	if total < 1 {
		total = 1
	}
	percent := int(float64(completed) / float64(total) * 100)
	filled := int(math.Round(float64(barWidth) * float64(completed) / float64(total)))
	bar := strings.Repeat("■", filled) + strings.Repeat("-", barWidth-filled)

	if p.reposition && completed > 0 {
		fmt.Fprint(p.w, strings.Repeat("\033[F", statusLines))
	}
	fmt.Fprintf(p.w, "|%s|\n", bar)
	fmt.Fprintf(p.w, "    Percent complete: %8d%%\n", percent)
	fmt.Fprintf(p.w, "    Test iteration: %11s\n", iteration)
	fmt.Fprintf(p.w, "    Testing model: %12s\n", model)
	fmt.Fprintf(p.w, "    Testing query: %12s\n", queryNum)
}

// Finish overwrites the block with a completed bar and placeholder
// status fields.
func (p *ProgressReporter) Finish(total int) {
	p.Render(total, total, "----", "----", "----")
}
