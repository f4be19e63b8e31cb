// Package main benchmarks scripted cybercompass quiz runs.
// Every quiz path runs several times without an archive and again against a
// SQLite archive, treating the first archived run as cold and averaging the rest as warm.
// Results are written as CSV for performance tracking.
//
// Prerequisites:
// - cybercompass binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory used as the working directory of every run
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/cybercompass/core"
	"github.com/huangsam/cybercompass/core/bank"
	"github.com/huangsam/cybercompass/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-archive average, cold run and average of warm runs).
type BenchmarkResult struct {
	Path          string
	NoArchiveTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoArchiveRuns int
	ArchiveRuns   int
	Paths         []schema.QuizPath
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       time.Minute,
		NoArchiveRuns: 5,
		ArchiveRuns:   6,
		Paths:         []schema.QuizPath{schema.ExplorerPath, schema.SpecialistPath, schema.OperatorPath, schema.CalibrationPath},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing archive...\n")
	clearCmd := exec.Command("cybercompass", "archive", "clear", "--archive-backend", string(schema.SQLiteBackend))
	clearCmd.Dir = config.WorkDir
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear archive: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Archive cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("cybercompass"); err != nil {
		return fmt.Errorf("cybercompass binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// scriptedArgs answers every question of path with the first choice and clears the drill.
func scriptedArgs(b *bank.Bank, path schema.QuizPath) []string {
	answers := make([]string, len(b.Path(path)))
	for i := range answers {
		answers[i] = "a"
	}
	actions := make([]string, 0, len(core.ReflexThreats))
	for _, threat := range core.ReflexThreats {
		actions = append(actions, string(threat.Action))
	}
	return []string{
		"quiz",
		"--path", string(path),
		"--shuffle=false",
		"--answers", strings.Join(answers, ","),
		"--reflex", strings.Join(actions, ","),
		"--output", string(schema.JSONOut),
	}
}

// runBenchmarks executes the benchmark suite for every configured path
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	b, err := bank.Load()
	if err != nil {
		return nil, err
	}

	fmt.Printf("Starting benchmark: %d paths, %v timeout, no-archive: %d runs, archive: %d runs\n",
		len(config.Paths), config.Timeout, config.NoArchiveRuns, config.ArchiveRuns)

	results := make([]BenchmarkResult, 0, len(config.Paths))
	for _, path := range config.Paths {
		results = append(results, runBenchmarkSuite(config, path, scriptedArgs(b, path)))
	}
	return results, nil
}

// runBenchmarkSuite runs both the no-archive and the archive phase for a path
func runBenchmarkSuite(config BenchmarkConfig, path schema.QuizPath, args []string) BenchmarkResult {
	fmt.Printf("Running %s quiz\n", path)

	// Phase 1: every no-archive run counts toward the average
	fmt.Printf("  No-archive phase (%d runs)\n", config.NoArchiveRuns)
	noArchiveAvg := average(runBenchmark(config, args, config.NoArchiveRuns))

	// Phase 2: the first archived run creates the database
	fmt.Printf("  Archive phase (%d runs)\n", config.ArchiveRuns)
	archiveArgs := append(slices.Clone(args), "--archive", "--archive-backend", string(schema.SQLiteBackend))
	times := runBenchmark(config, archiveArgs, config.ArchiveRuns)

	coldTime, warmAvg := "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
		warmAvg = average(times[1:])
	}

	fmt.Printf("  No-archive average: %s, Cold time: %s, Warm average: %s\n", noArchiveAvg, coldTime, warmAvg)

	return BenchmarkResult{
		Path:          string(path),
		NoArchiveTime: noArchiveAvg,
		ColdTime:      coldTime,
		WarmTime:      warmAvg,
	}
}

func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// runBenchmark executes the quiz numRuns times and returns the durations of successful runs in seconds
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) []float64 {
	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "cybercompass", args...)
		cmd.Dir = config.WorkDir
		output, err := cmd.Output()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed)
		}
	}
	return times
}

// isSuccess checks that the run printed a JSON dossier
func isSuccess(output []byte) bool {
	out := string(output)
	return strings.Contains(out, `"archetype"`) && strings.Contains(out, `"rank"`)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("cybercompass_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"path", "no_archive_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Path, result.NoArchiveTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: No-archive: %s, Cold: %s, Warm: %s\n", result.Path, result.NoArchiveTime, result.ColdTime, result.WarmTime)
	}
}
