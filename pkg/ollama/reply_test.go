package ollama

import "testing"

func TestDecompose(t *testing.T) {
	reply := &Reply{
		Response:           "use /tmp/scratch",
		Done:               true,
		DoneReason:         "stop",
		TotalDuration:      2000000000,
		PromptEvalDuration: 500000000,
		LoadDuration:       100000000,
	}
	f := Decompose(reply)

	if !f.Done {
		t.Errorf("done: got false, want true")
	}
	if f.DoneReason != "stop" {
		t.Errorf("done_reason: got %q, want %q", f.DoneReason, "stop")
	}
	if f.Duration != 2.0 {
		t.Errorf("duration: got %v, want 2.0", f.Duration)
	}
	if f.EvalDuration != 0.5 {
		t.Errorf("eval_duration: got %v, want 0.5", f.EvalDuration)
	}
	// load_duration stays in raw nanoseconds.
	if f.LoadDuration != 100000000 {
		t.Errorf("load_duration: got %v, want 100000000", f.LoadDuration)
	}
	if f.Response != "use tmpscratch" {
		t.Errorf("response: got %q, want slashes stripped", f.Response)
	}
}

func TestDecomposeDefaults(t *testing.T) {
	for _, reply := range []*Reply{nil, {}} {
		f := Decompose(reply)
		if f.Done {
			t.Errorf("done: got true, want false")
		}
		if f.DoneReason != "unknown" {
			t.Errorf("done_reason: got %q, want %q", f.DoneReason, "unknown")
		}
		if f.Duration != -1 || f.EvalDuration != -1 || f.LoadDuration != -1 {
			t.Errorf("durations: got %v/%v/%v, want -1 sentinels",
				f.Duration, f.EvalDuration, f.LoadDuration)
		}
		if f.Response != "NO RESPONSE" {
			t.Errorf("response: got %q, want placeholder", f.Response)
		}
	}
}
