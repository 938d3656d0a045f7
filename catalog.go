package blocksim

import (
	"github.com/diskosim/blocksim/internal/config"
	"github.com/diskosim/blocksim/internal/scenario"
)

// Scenario re-exports internal/scenario.Spec so callers outside this module
// (cmd/blocksim, blocksim_test.go) never need to import an internal
// package directly to build a catalog run.
type Scenario = scenario.Spec

// Catalog is the nine fixed demonstration scenarios from
// original_source/main.py, kept as a supplemental feature per SPEC_FULL.md
// section 5.
func Catalog() []Scenario { return scenario.Catalog }

// ScenarioByNumber looks up a catalog scenario by its menu number (1-9).
func ScenarioByNumber(n int) (Scenario, bool) { return scenario.ByNumber(n) }

// CompareScenarios returns the eight-process mixed workload paired with
// each of the three policies, in the fixed report order
// original_source/main.py::compare_strategies uses.
func CompareScenarios() []Scenario {
	procs := scenario.CompareProcesses()
	out := make([]Scenario, 0, len(scenario.ComparePolicies))
	for _, pol := range scenario.ComparePolicies {
		out = append(out, Scenario{
			Title:     "Strategy comparison: " + scenario.Title(pol),
			Policy:    pol,
			ConfigFn:  func(c config.Config) config.Config { return c },
			Processes: procs,
		})
	}
	return out
}

// RunParamsFor builds a RunParams from a catalog Scenario, applying its
// config override function to base and converting its process list.
func RunParamsFor(s Scenario, base config.Config) RunParams {
	procs := make([]ProcessSpec, len(s.Processes))
	for i, p := range s.Processes {
		procs[i] = ProcessSpec{Name: p.Name, Ops: p.Ops}
	}
	params := DefaultParams()
	params.Config = s.ConfigFn(base)
	params.Policy = s.Policy
	params.Processes = procs
	return params
}
