package bench

import (
	"bytes"
	"strings"
	"testing"
)

const cursorUp = "\033[F"

func TestProgressFirstRenderDoesNotReposition(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, true)
	p.Render(0, 10, "1", "m1", "1")

	out := buf.String()
	if strings.Contains(out, cursorUp) {
		t.Errorf("first render moved the cursor up")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != statusLines {
		t.Fatalf("line count: got %d, want %d", len(lines), statusLines)
	}
	if got := len([]rune(lines[0])); got != barWidth+2 {
		t.Errorf("bar line width: got %d, want %d", got, barWidth+2)
	}
	if !strings.Contains(lines[1], "0%") {
		t.Errorf("percent line: got %q, want 0%%", lines[1])
	}
}

func TestProgressRedrawRepositionsFiveLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, true)
	p.Render(0, 10, "1", "m1", "1")
	buf.Reset()
	p.Render(5, 10, "1", "m1", "6")

	out := buf.String()
	if got := strings.Count(out, cursorUp); got != statusLines {
		t.Errorf("cursor-up count: got %d, want %d", got, statusLines)
	}
	bar := strings.SplitN(out, "|", 3)[1]
	if got := strings.Count(bar, "■"); got != barWidth/2 {
		t.Errorf("filled cells at 50%%: got %d, want %d", got, barWidth/2)
	}
}

func TestProgressRepositionDisabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, false)
	p.Render(0, 4, "1", "m1", "1")
	p.Render(2, 4, "1", "m1", "3")

	if strings.Contains(buf.String(), cursorUp) {
		t.Errorf("non-terminal sink still received cursor moves")
	}
}

func TestProgressFinish(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, false)
	p.Finish(8)

	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("finish did not report 100%%: %q", out)
	}
	if strings.Contains(out, "-|") || !strings.Contains(out, "■|") {
		t.Errorf("finish bar is not fully filled: %q", out)
	}
	if got := strings.Count(out, "----"); got != 3 {
		t.Errorf("placeholder fields: got %d, want 3", got)
	}
}
