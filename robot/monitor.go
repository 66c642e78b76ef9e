package robot

import (
	"context"
	"time"

	"plumbot/core"
)

// DefaultPollEvery is the pause between monitoring iterations when none is given.
const DefaultPollEvery = 20 * time.Millisecond

// PollConfig controls a monitoring loop.
type PollConfig struct {
	Every time.Duration `yaml:"every"` // pause between iterations
	Limit int           `yaml:"limit"` // iterations to run, 0 = until cancelled
}

// Poll calls fn immediately and then once per cfg.Every. It returns nil
// after cfg.Limit iterations, ctx.Err() when ctx is cancelled, or the
// first error fn returns.
func Poll(ctx context.Context, cfg PollConfig, fn func(iter int) error) error {
	every := cfg.Every
	if every <= 0 {
		every = DefaultPollEvery
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for iter := 0; cfg.Limit <= 0 || iter < cfg.Limit; iter++ {
		if iter > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		core.RecordTiming(core.EvtPoll, 0, 0, uint32(iter), 0)
		if err := fn(iter); err != nil {
			return err
		}
	}
	return nil
}

// LineMonitor shows both line-sensor readings on the panel.
type LineMonitor struct {
	Sensors   *LineSensors
	Panel     *Panel
	Telemetry Telemetry // optional
}

// Step samples both sensors once and redraws the screen.
func (m *LineMonitor) Step() error {
	left, right, err := m.Sensors.Both()
	if err != nil {
		return err
	}
	if err := m.Panel.ShowLineValues(left, right); err != nil {
		return err
	}
	if m.Telemetry != nil {
		return m.Telemetry.Send(lineMessage(left, right))
	}
	return nil
}

// Run repeats Step under Poll.
func (m *LineMonitor) Run(ctx context.Context, cfg PollConfig) error {
	return Poll(ctx, cfg, func(int) error { return m.Step() })
}

// SonarMonitor shows the ultrasonic distance on the panel.
type SonarMonitor struct {
	Ranger    *Ranger
	Panel     *Panel
	MaxCm     uint32    // 0 = MaxDistanceCm, at most MaxRangeCm
	Telemetry Telemetry // optional
}

// Step measures once and redraws the distance.
func (m *SonarMonitor) Step() error {
	reading, err := m.Ranger.Measure(m.MaxCm)
	if err != nil {
		return err
	}
	// blank the digits of a longer previous reading
	if err := m.Panel.ShowString(0, 0, "   "); err != nil {
		return err
	}
	if err := m.Panel.ShowDistance(reading.Compat()); err != nil {
		return err
	}
	if m.Telemetry != nil {
		return m.Telemetry.Send(rangeMessage(reading))
	}
	return nil
}

// Run initialises the panel once, then repeats Step under Poll.
func (m *SonarMonitor) Run(ctx context.Context, cfg PollConfig) error {
	if err := m.Panel.Init(); err != nil {
		return err
	}
	return Poll(ctx, cfg, func(int) error { return m.Step() })
}
