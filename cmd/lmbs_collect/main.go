// lmbs_collect benchmarks local LLM inference endpoints.
//
// It reads a model list and a prompt list from JSON configuration files,
// optionally measures an idle-utilization baseline, then sends every
// prompt to every model over the requested number of iterations while
// sampling CPU/memory/GPU utilization in the background. The whole run
// is written to a JSON results file for later analysis by lmbs_analyze.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"

	"github.com/llmbs/llmbs/internal/utils"
	"github.com/llmbs/llmbs/pkg/bench"
	"github.com/llmbs/llmbs/pkg/ollama"
)

var config bench.Config

// Parse args:
func init() {
	config.AddToFlagSet(pflag.CommandLine)
	pflag.Parse()

	err := utils.SetupConfigFile()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("unable to decode config: %s", err))
	}
}

func main() {
	models, queries, err := bench.ReadInputs(config.ModelsFile, config.QueriesFile)
	if err != nil {
		fmt.Println(err)
		return
	}

	// Adjust the length of queries if specified by user.
	if config.MaxQueries != -1 && config.MaxQueries < len(queries) {
		queries = queries[:config.MaxQueries]
	}

	if config.Tag == "" && stdinIsTerminal() {
		config.Tag = promptForTag()
	}

	client := ollama.NewClient(config.URL, time.Duration(config.KeepAlive)*time.Second)
	progress := bench.NewProgressReporter(os.Stdout, stdoutIsTerminal())
	runner := bench.NewRunner(config, client, progress)

	result, err := runner.Run(models, queries)
	if err != nil {
		log.Fatalf("Error during request: %s", err)
	}
	fmt.Println("Test complete!")

	// Save performance results to a JSON file for later analysis.
	fmt.Println("Dumping the stats...")
	path := filepath.Join(config.ResultsDir, bench.ResultFileName(config.Tag))
	if err := result.WriteFile(path); err != nil {
		log.Fatalf("Error writing results: %s", err)
	}

	if config.HDRLatencies != "" {
		fmt.Printf("Saving High Dynamic Range (HDR) Histogram of Response Latencies to %s\n", config.HDRLatencies)
		if err := runner.WriteHDRLatencies(config.HDRLatencies); err != nil {
			log.Fatalf("Error writing latency histogram: %s", err)
		}
	}
	fmt.Println("Done!")
}

func promptForTag() string {
	fmt.Print("Enter a tag for this run (e.g. your initials, blank for none): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func stdinIsTerminal() bool {
	return isTerminal(os.Stdin)
}

func stdoutIsTerminal() bool {
	return isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
