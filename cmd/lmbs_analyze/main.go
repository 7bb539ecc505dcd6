// lmbs_analyze aggregates collector result files into per-model
// statistics.
//
// It loads either a single results file or every tagged results file in
// the results directory, flattens each run's records per model, computes
// mean/median/stddev/95% CI and failure rate for the tracked metrics,
// and prints one transposed table per file.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"

	"github.com/llmbs/llmbs/internal/utils"
	"github.com/llmbs/llmbs/pkg/analysis"
	"github.com/llmbs/llmbs/pkg/bench"
)

// Program option vars:
var (
	resultsDir       string
	singleFile       string
	subtractBaseline bool
)

// Parse args:
func init() {
	pflag.String("results-dir", ".", "Directory to scan for results files")
	pflag.String("file", "", "Analyze a single results file instead of scanning the results directory")
	pflag.Bool("subtract-baseline", false, "Subtract the run's idle baseline from the utilization metrics")
	pflag.Parse()

	err := utils.SetupConfigFile()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	resultsDir = viper.GetString("results-dir")
	singleFile = viper.GetString("file")
	subtractBaseline = viper.GetBool("subtract-baseline")
}

func main() {
	files := discoverFiles()
	if len(files) == 0 {
		fmt.Println("No results found.")
		return
	}

	reported := 0
	for _, f := range files {
		run, err := bench.LoadFile(f.Path)
		if err != nil {
			// A malformed file contributes nothing; keep going.
			fmt.Fprintf(os.Stderr, "Error loading %s: %s\n", f.Path, err)
			continue
		}
		models, grouped := analysis.GroupByModel(run)
		if len(models) == 0 {
			continue
		}

		stats := make(map[string]analysis.ModelStats, len(models))
		for _, model := range models {
			stats[model] = analysis.ComputeStats(grouped[model], run.Baseline, subtractBaseline)
		}
		if err := analysis.RenderReport(os.Stdout, f.Tag, models, stats); err != nil {
			log.Fatalf("Error rendering report: %s", err)
		}
		reported++
	}
	if reported == 0 {
		fmt.Println("No results found.")
	}
}

func discoverFiles() []analysis.ResultFile {
	if singleFile != "" {
		return []analysis.ResultFile{
			{Path: singleFile, Tag: analysis.TagFromFilename(singleFile)},
		}
	}
	files, err := analysis.DiscoverResultFiles(resultsDir)
	if err != nil {
		log.Fatalf("Error scanning %s: %s", resultsDir, err)
	}
	if len(files) == 0 {
		// No tagged runs; fall back to the fixed untagged filename.
		untagged := filepath.Join(resultsDir, bench.ResultFileName(""))
		if _, err := os.Stat(untagged); err == nil {
			files = append(files, analysis.ResultFile{Path: untagged})
		}
	}
	return files
}
