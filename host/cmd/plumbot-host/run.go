package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"plumbot/core"
	"plumbot/host/config"
	"plumbot/host/monitor"
	"plumbot/protocol"
	"plumbot/robot"
)

// Modes accepted by --mode.
const (
	modeLine  = "line"
	modeSonar = "sonar"
	modeDrive = "drive"
)

var driveCycle = []robot.Direction{
	robot.Forward, robot.SpinLeft, robot.Forward, robot.SpinRight, robot.Backward, robot.Stopped,
}

// session runs one of the robot blocks against a HAL.
type session struct {
	hal       core.HAL
	cfg       *config.Config
	telemetry robot.Telemetry

	// before runs ahead of every iteration, after reports its end
	before func(iter int)
	after  func(iter int) error
}

func (s *session) run(ctx context.Context, mode string) error {
	step, err := s.stepper(mode)
	if err != nil {
		return err
	}
	return robot.Poll(ctx, s.cfg.Poll, func(iter int) error {
		if s.before != nil {
			s.before(iter)
		}
		if err := step(iter); err != nil {
			return err
		}
		if s.after != nil {
			return s.after(iter)
		}
		return nil
	})
}

func (s *session) stepper(mode string) (func(int) error, error) {
	pins := s.cfg.Pins
	panel := robot.NewPanel(s.hal.Display)

	switch mode {
	case modeLine:
		if err := panel.Init(); err != nil {
			return nil, err
		}
		m := &robot.LineMonitor{
			Sensors:   robot.NewLineSensors(s.hal.ADC, pins.LeftLine, pins.RightLine),
			Panel:     panel,
			Telemetry: s.telemetry,
		}
		return func(int) error { return m.Step() }, nil

	case modeSonar:
		if err := panel.Init(); err != nil {
			return nil, err
		}
		m := &robot.SonarMonitor{
			Ranger:    robot.NewRanger(s.hal.GPIO, s.hal.Clock, pins.Trigger, pins.Echo),
			Panel:     panel,
			MaxCm:     s.cfg.MaxDistanceCm,
			Telemetry: s.telemetry,
		}
		return func(int) error { return m.Step() }, nil

	case modeDrive:
		d := robot.NewDrive(s.hal.PWM, pins)
		d.Telemetry = s.telemetry
		return func(iter int) error {
			return d.Apply(driveCycle[iter%len(driveCycle)])
		}, nil
	}
	return nil, fmt.Errorf("unknown mode %q (want %s, %s or %s)", mode, modeLine, modeSonar, modeDrive)
}

// telemetryPrinter frames each message, decodes the frame again and
// prints the result, exercising the path the serial link uses.
type telemetryPrinter struct {
	enc  *protocol.Encoder
	dec  *protocol.Decoder
	wire bytes.Buffer
	out  io.Writer
}

func newTelemetryPrinter(out io.Writer) *telemetryPrinter {
	t := &telemetryPrinter{dec: protocol.NewDecoder(), out: out}
	t.enc = protocol.NewEncoder(&t.wire)
	return t
}

func (t *telemetryPrinter) Send(msg protocol.Message) error {
	if err := t.enc.Send(msg); err != nil {
		return err
	}
	for _, m := range t.dec.Feed(t.wire.Bytes()) {
		fmt.Fprintf(t.out, "  [%2d] %s\n", m.Seq, monitor.Format(m))
	}
	t.wire.Reset()
	return nil
}
