package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/searchspace/pkg/experiment"
)

// compareCommand creates the "compare" command: run every algorithm of a
// TOML sweep config on one generated instance and tabulate the results.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		live    bool
		jsonOut string
		cFlags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "compare <config.toml>",
		Short: "Compare search algorithms on one generated instance",
		Long: `Load a TOML sweep config, generate the problem instance from its seed,
and solve it with every configured algorithm. All neighborhood algorithms
start from the same state so the comparison is fair, and each algorithm draws
from its own random stream so cached results stay valid run over run.`,
		Example: `  searchspace compare sweep.toml
  searchspace compare sweep.toml --live
  searchspace compare sweep.toml --json report.json --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := experiment.Load(args[0])
			if err != nil {
				return err
			}
			if err := cfg.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd, cFlags)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			track := newProgress(c.Logger)

			var report *experiment.Report
			if live {
				report, err = runSweepLive(cmd.Context(), runner, cfg)
			} else {
				report, err = runner.Run(cmd.Context(), cfg)
			}
			if err != nil {
				return err
			}
			if report == nil {
				// The live view was quit before the sweep finished.
				printWarning("sweep aborted")
				return nil
			}
			track.done(fmt.Sprintf("Compared %d algorithms", len(report.Results)))

			printInstance(report.Problem, report.InitialCost)
			printReport(report)

			if jsonOut != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(jsonOut, data, 0644); err != nil {
					return err
				}
				printFile(jsonOut)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "show per-algorithm progress while the sweep runs")
	cmd.Flags().StringVar(&jsonOut, "json", "", "also write the full report as JSON to this path")
	cFlags.register(cmd)

	return cmd
}
