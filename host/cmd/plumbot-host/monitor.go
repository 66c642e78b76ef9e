package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"plumbot/host/mcu"
	"plumbot/host/monitor"
	"plumbot/protocol"
)

var (
	monitorOpts = struct {
		device string
		baud   int
	}{}

	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Print the telemetry a robot sends over USB serial",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("device") {
				cfg.Serial.Device = monitorOpts.device
			}
			if cmd.Flags().Changed("baud") {
				cfg.Serial.Baud = monitorOpts.baud
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Connecting to robot on %s...\n", cfg.Serial.Device)

			conn := mcu.NewMCU()
			if err := conn.ConnectWithConfig(&cfg.Serial); err != nil {
				return err
			}
			defer conn.Close()

			stats, err := conn.Telemetry(cmd.Context(), func(msg protocol.Message) {
				fmt.Fprintln(out, monitor.Format(msg))
			})
			fmt.Fprintf(out, "%d frames, %d dropped, %d sequence gaps\n", stats.Frames, stats.Dropped, stats.SeqGaps)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
)

func init() {
	monitorCmd.Flags().StringVarP(&monitorOpts.device, "device", "d", "/dev/ttyACM0", "serial device path")
	monitorCmd.Flags().IntVarP(&monitorOpts.baud, "baud", "b", 115200, "baud rate")
}
