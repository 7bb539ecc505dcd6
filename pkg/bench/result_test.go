package bench

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/google/go-cmp/cmp"

	"github.com/llmbs/llmbs/pkg/monitor"
)

func boolPtr(v bool) *bool { return &v }

func testRecord(query, response string, done bool, duration float64) QueryRecord {
	return QueryRecord{
		Query:      query,
		Response:   response,
		Done:       boolPtr(done),
		DoneReason: "stop",
		Duration:   float64Ptr(duration),
	}
}

func testRun() *RunResult {
	r := &RunResult{Baseline: &monitor.Usage{CPU: 1.5, Mem: 2.5}}
	// m2 first on purpose: insertion order, not lexical order.
	r.Append(1, "m2", testRecord("q1", "ok", true, 2))
	r.Append(1, "m1", testRecord("q1", "fine", false, 3.5))
	r.Append(2, "m2", testRecord("q1", "again", true, 1))
	return r
}

func TestRunResultMarshalPreservesOrder(t *testing.T) {
	b, err := json.MarshalIndent(runFile{Results: testRun()}, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	want := `{
  "results": {
    "baseline": {
      "cpu": 1.5,
      "mem": 2.5,
      "gpu": 0
    },
    "1": {
      "m2": [
        {
          "query": "q1",
          "response": "ok",
          "done": true,
          "done_reason": "stop",
          "duration": 2
        }
      ],
      "m1": [
        {
          "query": "q1",
          "response": "fine",
          "done": false,
          "done_reason": "stop",
          "duration": 3.5
        }
      ]
    },
    "2": {
      "m2": [
        {
          "query": "q1",
          "response": "again",
          "done": true,
          "done_reason": "stop",
          "duration": 1
        }
      ]
    }
  }
}`
	if got := string(b); got != want {
		t.Errorf("serialized run mismatch:\n%s", diff.LineDiff(want, got))
	}
}

func TestRunResultRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "lmbs")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	orig := testRun()
	path := filepath.Join(dir, ResultFileName("test"))
	if err := orig.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(orig, loaded); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestRunResultUnmarshalRejectsStrayKeys(t *testing.T) {
	var r RunResult
	if err := json.Unmarshal([]byte(`{"not-a-number": {}}`), &r); err == nil {
		t.Error("expected an error for a non-numeric iteration key")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("does-not-exist.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestResultFileName(t *testing.T) {
	if got := ResultFileName(""); got != "performance_results.json" {
		t.Errorf("untagged name: got %q", got)
	}
	if got := ResultFileName("jd"); got != "performance_results_jd.json" {
		t.Errorf("tagged name: got %q", got)
	}
}
