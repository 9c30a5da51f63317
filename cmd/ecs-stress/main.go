// Command ecs-stress drives a registry through a churn-heavy simulation and
// prints a timing and occupancy report.
//
// Profiling:
// ecs-stress run --profile cpu --profile-dir /tmp
// go tool pprof -http=":8000" /tmp/cpu.pprof
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ecs-stress",
		Short:         "Stress test the sparse-set entity registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		duration   time.Duration
		entities   int
		seed       uint64
		profileOut string
		profileDir string
		logLevel   string
		gcMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the stress simulation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("duration") {
				cfg.Run.Duration = duration
			}
			if flags.Changed("entities") {
				cfg.Run.Entities = entities
			}
			if flags.Changed("seed") {
				cfg.Run.Seed = seed
			}
			if flags.Changed("profile") {
				cfg.Run.Profile = profileOut
			}
			if flags.Changed("profile-dir") {
				cfg.Run.ProfileDir = profileDir
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("gc-pause-metrics") {
				cfg.Run.GCPauseMetrics = gcMetrics
			}
			if err := cfg.validate(); err != nil {
				return eris.Wrap(err, "flags")
			}

			log, err := newLogger(cfg.Logging)
			if err != nil {
				return eris.Wrap(err, "build logger")
			}
			defer func() { _ = log.Sync() }()

			if stop := startProfile(cfg.Run); stop != nil {
				defer stop()
			}

			report := runSimulation(cmd.Context(), cfg, log)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n\n--- Stress Test Report ---")
			if err := report.Generate(out); err != nil {
				return eris.Wrap(err, "generate report")
			}
			fmt.Fprintln(out, "--- End of Report ---")

			log.Info("stress test complete", zap.Int64("updates", report.TotalUpdates))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "TOML scenario file")
	flags.DurationVar(&duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flags.IntVar(&entities, "entities", 10000, "The initial number of entities to create.")
	flags.Uint64Var(&seed, "seed", 1, "Random seed for the scenario.")
	flags.StringVar(&profileOut, "profile", "", "Write a profile while running: cpu or mem.")
	flags.StringVar(&profileDir, "profile-dir", ".", "Directory for profile output.")
	flags.StringVar(&logLevel, "log-level", "info", "Log level.")
	flags.BoolVar(&gcMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")

	return cmd
}

// startProfile returns the stop function, or nil when profiling is off
func startProfile(cfg RunConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return nil
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}
