package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stal/internal/config"
	"stal/internal/driver"
	"stal/internal/observ"
	"stal/internal/trace"
)

// setupRun resolves the persistent flags shared by every subcommand into
// driver options, attaches a tracer to the command context, and returns a
// cleanup function that flushes the tracer and prints timings when asked.
func setupRun(cmd *cobra.Command) (driver.Options, func(), error) {
	root := cmd.Root()

	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return driver.Options{}, nil, err
	}
	tracer := trace.New(os.Stderr, level)
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	configPath, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	tuning, err := config.Discover(configPath, ".")
	if err != nil {
		return driver.Options{}, nil, err
	}

	jobs, err := root.PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}

	showTimings, err := root.PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.Options{
		Tuning: tuning,
		Jobs:   jobs,
		Timer:  observ.NewTimer(),
	}
	cleanup := func() {
		if showTimings {
			fmt.Fprint(os.Stderr, opts.Timer.Summary())
		}
		_ = tracer.Close()
	}
	return opts, cleanup, nil
}
