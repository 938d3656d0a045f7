// Command blocksim drives the block-I/O subsystem simulator from the
// command line. Grounded on go-ublk's cmd/ublk-mem/main.go (flag parsing,
// a verbose-gated logger, deferred teardown) and melisai's cmd/melisai
// (a Cobra command tree with one RunE per subcommand).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diskosim/blocksim"
	"github.com/diskosim/blocksim/internal/config"
	"github.com/diskosim/blocksim/internal/trace"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "blocksim",
		Short:   "Deterministic, event-driven simulator of an OS block-I/O subsystem",
		Version: version,
	}

	var (
		runScenario int
		runCompare  bool
		runVerbose  bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one scenario, or --compare all three policies on one workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := trace.Sink(trace.Discard{})
			if runVerbose {
				sink = trace.NewZerologSink(os.Stdout)
			}

			if runCompare {
				return runComparison(sink)
			}
			return runScenario1Through9(runScenario, sink)
		},
	}
	runCmd.Flags().IntVar(&runScenario, "scenario", 0, "scenario number 1-9 (falls back to the interactive menu if unset)")
	runCmd.Flags().BoolVar(&runCompare, "compare", false, "run the FIFO/LOOK/NLOOK three-way comparison")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "emit the structured trace log")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the scenario catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, sc := range blocksim.Catalog() {
				fmt.Printf("%d. %s\n", sc.Number, sc.Title)
			}
			fmt.Println("0. Compare FIFO, LOOK, and NLOOK in complex situation")
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runScenario1Through9 runs the requested scenario number, falling back to
// the interactive numbered menu when n is 0 (unset), matching
// original_source/main.py::main's input()-driven dispatch. Invalid input,
// from either source, runs scenario 1, per spec.md section 6.
func runScenario1Through9(n int, sink trace.Sink) error {
	if n == 0 {
		n = promptForScenario()
	}
	if n == 0 {
		return runComparison(sink)
	}

	sc, ok := blocksim.ScenarioByNumber(n)
	if !ok {
		fmt.Println("Invalid choice. Running default scenario...")
		sc, _ = blocksim.ScenarioByNumber(1)
	}

	return runOne(sc, sink)
}

// promptForScenario reimplements original_source/main.py::main's menu over
// bufio.Scanner. Returns 0 for the comparison entry, and 1 (scenario 1)
// if stdin gave nothing or nothing parseable in the range 1-9.
func promptForScenario() int {
	fmt.Println("Available scenarios:")
	for _, sc := range blocksim.Catalog() {
		fmt.Printf("%d. %s\n", sc.Number, sc.Title)
	}
	fmt.Println("0. Compare FIFO, LOOK, and NLOOK in complex situation")
	fmt.Print("Select scenario (1-9): ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return 1
	}
	choice := strings.TrimSpace(scanner.Text())
	if choice == "0" {
		return 0
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > 9 {
		return 1
	}
	return n
}

func runOne(sc blocksim.Scenario, sink trace.Sink) error {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("SCENARIO %d: %s\n", sc.Number, sc.Title)
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()

	params := blocksim.RunParamsFor(sc, config.Default())
	params.Sink = sink

	sim, err := blocksim.NewSimulator(params)
	if err != nil {
		return err
	}
	if err := sim.Run(); err != nil {
		return err
	}

	info := sim.Info()
	fmt.Printf("Done (Time: %d us, Seeks: %d, Seek Time: %.2f ms)\n",
		info.NowUS, info.TotalSeeks, info.TotalSeekTimeMs)
	return nil
}

// runComparison reimplements original_source/main.py::compare_strategies:
// the same eight-process workload run once per policy, reported in a
// fixed table.
func runComparison(sink trace.Sink) error {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("STRATEGY COMPARISON")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()

	type row struct {
		name            string
		nowUS           int64
		totalSeeks      int
		totalSeekTimeMs float64
	}
	var rows []row

	for _, sc := range blocksim.CompareScenarios() {
		fmt.Printf("Testing %s... ", sc.Policy)

		params := blocksim.RunParamsFor(sc, config.Default())
		params.Sink = sink
		sim, err := blocksim.NewSimulator(params)
		if err != nil {
			return err
		}
		if err := sim.Run(); err != nil {
			return err
		}

		info := sim.Info()
		fmt.Printf("Done (Time: %d us, Seeks: %d, Seek Time: %.2f ms)\n\n",
			info.NowUS, info.TotalSeeks, info.TotalSeekTimeMs)
		rows = append(rows, row{sc.Policy.String(), info.NowUS, info.TotalSeeks, info.TotalSeekTimeMs})
	}

	fmt.Println()
	fmt.Printf("%-15s %-20s %-10s %-15s\n", "Strategy", "Total Time (us)", "Seeks", "Seek Time (ms)")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range rows {
		fmt.Printf("%-15s %-20d %-10d %-15.2f\n", r.name, r.nowUS, r.totalSeeks, r.totalSeekTimeMs)
	}
	return nil
}
