package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strconv"

	"github.com/pkg/errors"

	"github.com/llmbs/llmbs/pkg/monitor"
)

// QueryRecord is one request/response pair. Numeric fields and the
// completion flag are pointers so a key absent from a decoded file stays
// distinguishable from a zero value; the statistics engine excludes
// absent keys from its aggregates.
type QueryRecord struct {
	Query        string   `json:"query"`
	Response     string   `json:"response"`
	Done         *bool    `json:"done,omitempty"`
	DoneReason   string   `json:"done_reason"`
	Duration     *float64 `json:"duration,omitempty"`
	EvalDuration *float64 `json:"eval_duration,omitempty"`
	LoadDuration *float64 `json:"load_duration,omitempty"`
	AvgCPU       *float64 `json:"avg_cpu,omitempty"`
	AvgMem       *float64 `json:"avg_mem,omitempty"`
	AvgGPU       *float64 `json:"avg_gpu,omitempty"`
}

// ModelRecords pairs a model name with its records for one iteration,
// in request order.
type ModelRecords struct {
	Model   string
	Records []QueryRecord
}

// Iteration is one full pass over every model and prompt.
type Iteration struct {
	Number int
	Models []ModelRecords
}

// RunResult is the complete output of one collector run. Iteration order
// and within-iteration model order are insertion-ordered and survive a
// JSON round-trip. The whole structure is built in memory and written
// once at the end of the run.
type RunResult struct {
	Baseline   *monitor.Usage
	Iterations []Iteration
}

// Append adds one record under the given 1-based iteration number and
// model name, creating slots in first-use order.
func (r *RunResult) Append(iteration int, model string, rec QueryRecord) {
	var it *Iteration
	for i := range r.Iterations {
		if r.Iterations[i].Number == iteration {
			it = &r.Iterations[i]
			break
		}
	}
	if it == nil {
		r.Iterations = append(r.Iterations, Iteration{Number: iteration})
		it = &r.Iterations[len(r.Iterations)-1]
	}
	for i := range it.Models {
		if it.Models[i].Model == model {
			it.Models[i].Records = append(it.Models[i].Records, rec)
			return
		}
	}
	it.Models = append(it.Models, ModelRecords{Model: model, Records: []QueryRecord{rec}})
}

// MarshalJSON writes the nested result shape with iteration numbers as
// string keys, emitting keys in insertion order.
func (r *RunResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeKey := func(k string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
	}
	if r.Baseline != nil {
		writeKey("baseline")
		b, err := json.Marshal(r.Baseline)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	for _, it := range r.Iterations {
		writeKey(strconv.Itoa(it.Number))
		buf.WriteByte('{')
		for j, mr := range it.Models {
			if j > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(mr.Model)
			buf.Write(kb)
			buf.WriteByte(':')
			b, err := json.Marshal(mr.Records)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so that iteration and
// model order come back exactly as stored in the file.
func (r *RunResult) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if key == "baseline" {
			var u monitor.Usage
			if err := dec.Decode(&u); err != nil {
				return err
			}
			r.Baseline = &u
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil {
			return errors.Errorf("results: unexpected key %q", key)
		}
		it := Iteration{Number: n}
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		for dec.More() {
			model, err := stringToken(dec)
			if err != nil {
				return err
			}
			var recs []QueryRecord
			if err := dec.Decode(&recs); err != nil {
				return err
			}
			it.Models = append(it.Models, ModelRecords{Model: model, Records: recs})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return err
		}
		r.Iterations = append(r.Iterations, it)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.Errorf("results: expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", errors.Errorf("results: expected string key, got %v", tok)
	}
	return s, nil
}

// runFile is the top-level shape of a results file.
type runFile struct {
	Results *RunResult `json:"results"`
}

const resultFilePrefix = "performance_results"

// ResultFileName returns the results filename for a tag, or the bare
// fixed name when the tag is empty.
func ResultFileName(tag string) string {
	if tag == "" {
		return resultFilePrefix + ".json"
	}
	return fmt.Sprintf("%s_%s.json", resultFilePrefix, tag)
}

// WriteFile serializes the run to path, indented for inspection.
func (r *RunResult) WriteFile(path string) error {
	b, err := json.MarshalIndent(runFile{Results: r}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing results")
	}
	if err := ioutil.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// LoadFile reads a previously written results file.
func LoadFile(path string) (*RunResult, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var rf runFile
	if err := json.Unmarshal(b, &rf); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	if rf.Results == nil {
		return &RunResult{}, nil
	}
	return rf.Results, nil
}
