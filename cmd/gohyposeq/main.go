// Command gohyposeq runs the two fixed Gaussian-mean-hypotheses
// simulations spec.md §6 describes and reports expected sample size
// and error probability for ASPRT and GSPRT, grounded on
// original_source/src/gaussian_mean_hypotheses/main.cpp's program
// struct.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gohyposeq/internal/config"
	"gohyposeq/internal/logx"
	"gohyposeq/internal/montecarlo"
	"gohyposeq/internal/report"
	"gohyposeq/internal/simulator"
	"gohyposeq/internal/xerr"
)

// workerCount mirrors main.cpp's constexpr count_threads = 4.
const workerCount = 4

// Exit codes spec.md §6 assigns to the CLI.
const (
	exitSuccess           = 0
	exitConfigUnreadable  = 1
	exitConfigUnparseable = 7
)

func main() {
	log := logx.New("gohyposeq")

	root := &cobra.Command{
		Use:   "gohyposeq",
		Short: "Monte-Carlo simulator for the Gaussian-mean-hypotheses ASPRT/GSPRT stopping rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), log)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := root.Execute(); err != nil {
		switch {
		case errors.Is(err, xerr.ErrConfigUnreadable):
			fmt.Println("Failed to read config file.")
			os.Exit(exitConfigUnreadable)
		case errors.Is(err, xerr.ErrConfigUnparseable):
			fmt.Println("Failed to parse config file.")
			os.Exit(exitConfigUnparseable)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	os.Exit(exitSuccess)
}

func run(ctx context.Context, log *logx.Logger) error {
	cfg, err := config.Load("./config.json")
	if err != nil {
		return err
	}

	log.Printf("loaded config: %d simulations, weakest signal strength %v",
		cfg.Simulations, cfg.Model.WeakestSignalStrength())

	// First simulation: observations from Pr_0, change of measure to Pr_1.
	if err := runSimulation(ctx, cfg, 0, cfg.Model.WeakestSignalStrength(), cfg.AnticipatedSampleSizeUnderNull); err != nil {
		return err
	}

	// Second simulation: observations from Pr_1, change of measure to Pr_0.
	if err := runSimulation(ctx, cfg, cfg.Model.WeakestSignalStrength(), 0, cfg.AnticipatedSampleSizeUnderAlt); err != nil {
		return err
	}

	return nil
}

func runSimulation(ctx context.Context, cfg *config.Config, simulatedSignalStrength, changeOfMeasureSignalStrength, anticipatedSampleSize float64) error {
	newSimulator := func() (*simulator.Simulator, error) {
		return simulator.New(simulator.Config{
			Model:                         cfg.Model,
			ASPRTThresholds:               cfg.ASPRTThresholds,
			GSPRTThresholds:               cfg.GSPRTThresholds,
			SimulatedSignalStrength:       simulatedSignalStrength,
			ChangeOfMeasureSignalStrength: changeOfMeasureSignalStrength,
			AnticipatedSampleSize:         anticipatedSampleSize,
		})
	}

	start := time.Now()
	out, err := montecarlo.Run(ctx, montecarlo.Config{
		Replications: cfg.Simulations,
		Workers:      workerCount,
		TimeSeed:     time.Now().UnixNano(),
	}, newSimulator)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}
	elapsed := time.Since(start)

	return report.Summary(os.Stdout, cfg.Simulations, simulatedSignalStrength, changeOfMeasureSignalStrength, out, elapsed)
}
