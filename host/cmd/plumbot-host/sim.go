package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"plumbot/core"
	"plumbot/robot"
	"plumbot/sim"
)

var (
	simOpts = struct {
		mode       string
		iterations int
		every      time.Duration
		telemetry  bool
	}{}

	simCmd = &cobra.Command{
		Use:   "sim",
		Short: "Run a robot block against a simulated board",
		Long: "Run the line monitor, sonar monitor or a drive pattern on a simulated " +
			"board with scripted sensor input, printing the panel after every step.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Poll.Limit = simOpts.iterations
			if cmd.Flags().Changed("every") {
				cfg.Poll.Every = simOpts.every
			}

			out := cmd.OutOrStdout()
			board := sim.NewBoard()
			s := &session{
				hal: board.HAL(),
				cfg: cfg,
				before: func(iter int) {
					script(board, cfg.Pins, simOpts.mode, iter)
				},
				after: func(iter int) error {
					return report(out, board, cfg.Pins, simOpts.mode, iter)
				},
			}
			if simOpts.telemetry {
				s.telemetry = newTelemetryPrinter(out)
			}
			err = s.run(cmd.Context(), simOpts.mode)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
)

func init() {
	simCmd.Flags().StringVarP(&simOpts.mode, "mode", "m", modeLine, "block to run: line, sonar or drive")
	simCmd.Flags().IntVarP(&simOpts.iterations, "iterations", "n", 10, "iterations to run, 0 = until interrupted")
	simCmd.Flags().DurationVar(&simOpts.every, "every", robot.DefaultPollEvery, "pause between iterations")
	simCmd.Flags().BoolVarP(&simOpts.telemetry, "telemetry", "t", false, "print the telemetry frames as decoded by the host")
}

// script sets up the sensor input of one iteration: the line sensors
// sweep across the threshold and the obstacle approaches, losing the echo
// every fifth measurement.
func script(b *sim.Board, pins robot.Pins, mode string, iter int) {
	switch mode {
	case modeLine:
		left := core.ADCValue((iter * 97) % (core.ADCMax + 1))
		b.SetAnalog(pins.LeftLine, left)
		b.SetAnalog(pins.RightLine, core.ADCMax-left)
	case modeSonar:
		if iter%5 == 4 {
			b.QueueEcho(sim.NoEcho())
			return
		}
		cm := uint32(300 - (iter*23)%290)
		b.QueueEcho(sim.EchoAfter(450, cm*robot.MicrosPerCm+robot.MicrosPerCm/2))
	}
}

func report(out io.Writer, b *sim.Board, pins robot.Pins, mode string, iter int) error {
	if mode == modeDrive {
		_, err := fmt.Fprintf(out, "#%d %-8s L=%4d/%-4d R=%4d/%-4d\n", iter, driveCycle[iter%len(driveCycle)],
			b.Duty(pins.LeftForward), b.Duty(pins.LeftReverse),
			b.Duty(pins.RightForward), b.Duty(pins.RightReverse))
		return err
	}
	_, err := fmt.Fprintf(out, "#%d t=%dus\n%s\n", iter, b.Micros(), b.String())
	return err
}
