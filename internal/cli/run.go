package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/alphacut/internal/engine"
	"github.com/ppiankov/alphacut/internal/model"
)

var (
	runTimeout time.Duration
	runTimings bool
	runWorkers int
	noCache    bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <workload.yaml>",
	Short: "Evaluate every operation of a workload and print the resulting cuts",
	Long: `Run builds the fuzzy sets described in a workload file and evaluates its
operations. Independent operations are evaluated concurrently; operations
that reference other results wait for them.

Example:
  alphacut run workload.yaml
  alphacut run workload.yaml --timings --workers 8
  alphacut run workload.yaml --no-cache -v`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runTimeout, "timeout", time.Minute, "overall evaluation timeout")
	runCmd.Flags().BoolVar(&runTimings, "timings", false, "print evaluation time per operation")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "concurrent combinations per wave (default from config)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result memoisation")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if runWorkers > 0 {
		cfg.Engine.Workers = runWorkers
	}
	if noCache {
		cfg.Engine.CacheEnabled = false
	}

	return evaluate(ctx, cmd.OutOrStdout(), os.Stderr, args[0], cfg, runTimings)
}

// evaluate loads the workload at path, runs it and renders the result to out
func evaluate(ctx context.Context, out, logOut io.Writer, path string, cfg *model.Config, timings bool) error {
	w, err := model.LoadWorkload(path)
	if err != nil {
		return err
	}

	log := newLogger(logOut, cfg.Output.Verbose)
	res, err := engine.New(cfg, log).Run(ctx, w)
	if err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}

	if err := engine.NewRenderer(timings).Render(out, res); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
