package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"plumbot/core"
	"plumbot/host/config"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "plumbot-host",
		Short: "Host tools for the plumbot robot blocks",
		Long: "Watch telemetry from a micro:bit robot, run the robot blocks against a " +
			"simulated board, or drive a Raspberry Pi wired like the robot.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
				core.SetDebugEnabled(true)
				core.InitAsyncDebug()
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if debug {
				core.DumpTimingRing()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debug output and the timing ring on exit")
	rootCmd.AddCommand(monitorCmd, simCmd, rpiCmd)
}

// loadConfig returns the file given with --config, or the defaults.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
