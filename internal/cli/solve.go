package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/searchspace/pkg/experiment"
)

// algoFlags collects the algorithm selection and parameters shared by the
// assign and partition commands.
type algoFlags struct {
	name        string
	width       int
	iterations  int
	initialTemp float64
	tempLength  int
	coolingRate float64
	depthLimit  int
	maxSteps    int
	limit       int
	seed        uint64
}

func (f *algoFlags) register(cmd *cobra.Command, defaultAlgo string) {
	cmd.Flags().StringVarP(&f.name, "algorithm", "a", defaultAlgo,
		fmt.Sprintf("algorithm to run (%s)", strings.Join([]string{
			experiment.AlgoHillClimbing,
			experiment.AlgoAnnealing,
			experiment.AlgoLocalBeam,
			experiment.AlgoBranchAndBound,
			experiment.AlgoBestFirst,
			experiment.AlgoBeam,
		}, ", ")))
	cmd.Flags().IntVar(&f.width, "width", 0, "beam and local-beam pool width")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "annealing iteration budget")
	cmd.Flags().Float64Var(&f.initialTemp, "temp", 0, "annealing initial temperature (0 is greedy)")
	cmd.Flags().IntVar(&f.tempLength, "temp-length", 0, "annealing iterations per temperature stage")
	cmd.Flags().Float64Var(&f.coolingRate, "cooling", 0, "annealing geometric cooling rate")
	cmd.Flags().IntVar(&f.depthLimit, "depth-limit", 0, "branch-and-bound depth limit")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "hill-climbing and local-beam step budget")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "expansion limit for frontier searches")
	cmd.Flags().Uint64Var(&f.seed, "algo-seed", 0, "override the derived algorithm random stream")
}

func (f *algoFlags) toConfig() experiment.AlgorithmConfig {
	return experiment.AlgorithmConfig{
		Name:        f.name,
		Width:       f.width,
		Iterations:  f.iterations,
		InitialTemp: f.initialTemp,
		TempLength:  f.tempLength,
		CoolingRate: f.coolingRate,
		DepthLimit:  f.depthLimit,
		MaxSteps:    f.maxSteps,
		Limit:       f.limit,
		Seed:        f.seed,
	}
}

// runSingle drives a one-algorithm sweep with a spinner and prints the
// report. Both solve commands share it.
func (c *CLI) runSingle(cmd *cobra.Command, cfg experiment.Config, cFlags cacheFlags) (*experiment.Report, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runner, err := c.newRunner(cmd, cFlags)
	if err != nil {
		return nil, err
	}
	defer runner.Cache.Close()

	track := newProgress(c.Logger)
	sp := newSpinner(cmd.Context(), fmt.Sprintf("solving with %s", cfg.Algorithms[0].Label))
	sp.Start()

	report, err := runner.Run(cmd.Context(), cfg)
	if err != nil {
		sp.StopWithError("search failed")
		return nil, err
	}
	sp.Stop()
	track.done(fmt.Sprintf("Solved %s instance", cfg.Problem.Kind))

	printInstance(report.Problem, report.InitialCost)
	printReport(report)
	return report, nil
}
