// Package bench drives a collector run: it iterates the configured
// models and prompts against a generate endpoint, samples machine
// utilization per request, and accumulates the run into a RunResult.
package bench

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Config holds the knobs for one collector run.
type Config struct {
	URL            string  `mapstructure:"url"`
	ModelsFile     string  `mapstructure:"models-file"`
	QueriesFile    string  `mapstructure:"queries-file"`
	MaxQueries     int     `mapstructure:"max-queries"`
	TestIterations int     `mapstructure:"test-iterations"`
	SampleInterval float64 `mapstructure:"sample-interval"`
	KeepAlive      int     `mapstructure:"keep-alive"`
	ResultsDir     string  `mapstructure:"results-dir"`
	Tag            string  `mapstructure:"tag"`
	HDRLatencies   string  `mapstructure:"hdr-latencies"`
	SkipBaseline   bool    `mapstructure:"skip-baseline"`
}

// AddToFlagSet adds the command line flags needed by the Config to the
// flag set.
func (c Config) AddToFlagSet(fs *pflag.FlagSet) {
	fs.String("url", "http://localhost:11434", "Base URL of the inference endpoint")
	fs.String("models-file", "models.json", "JSON file listing the models to benchmark")
	fs.String("queries-file", "queries.json", "JSON file listing the prompts to send")
	fs.Int("max-queries", -1, "Maximum number of queries to test on, -1 = all queries")
	fs.Int("test-iterations", 1, "Number of iterations to run this test")
	fs.Float64("sample-interval", 1, "Utilization sampling interval in seconds")
	fs.Int("keep-alive", 0, "Seconds to ask the endpoint to keep each model loaded after a call, 0 to omit")
	fs.String("results-dir", ".", "Directory to write the results file into")
	fs.String("tag", "", "Tag embedded in the results filename (prompted for interactively when empty)")
	fs.String("hdr-latencies", "", "Write the HDR histogram of request latencies to this file")
	fs.Bool("skip-baseline", false, "Skip the idle-utilization baseline measurement")
}

type modelsFile struct {
	Models []string `json:"models"`
}

type queriesFile struct {
	Queries []string `json:"queries"`
}

// ReadInputs loads the model list and prompt list from their JSON files.
// Either file missing or malformed aborts the run before any request is
// sent.
func ReadInputs(modelsPath, queriesPath string) ([]string, []string, error) {
	var mf modelsFile
	if err := readJSONFile(modelsPath, &mf); err != nil {
		return nil, nil, errors.Wrapf(err, "error reading %s", modelsPath)
	}
	var qf queriesFile
	if err := readJSONFile(queriesPath, &qf); err != nil {
		return nil, nil, errors.Wrapf(err, "error reading %s", queriesPath)
	}
	return mf.Models, qf.Queries, nil
}

func readJSONFile(path string, v interface{}) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
