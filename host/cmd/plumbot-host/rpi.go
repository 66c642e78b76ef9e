package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"plumbot/host/rpi"
)

var (
	rpiOpts = struct {
		mode       string
		iterations int
	}{}

	rpiCmd = &cobra.Command{
		Use:   "rpi",
		Short: "Run a robot block on a Raspberry Pi",
		Long: "Run the line monitor, sonar monitor or a drive pattern on a Raspberry Pi " +
			"wired like the robot. The panel is drawn on the terminal.",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("iterations") {
				cfg.Poll.Limit = rpiOpts.iterations
			}

			board, err := rpi.Open(cfg.Rpi, cfg.Pins, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, board.Close())
			}()

			s := &session{hal: board.HAL(), cfg: cfg}
			err = s.run(cmd.Context(), rpiOpts.mode)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
)

func init() {
	rpiCmd.Flags().StringVarP(&rpiOpts.mode, "mode", "m", modeSonar, "block to run: line, sonar or drive")
	rpiCmd.Flags().IntVarP(&rpiOpts.iterations, "iterations", "n", 0, "iterations to run, 0 = until interrupted")
}
