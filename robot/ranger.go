package robot

import (
	"fmt"

	"plumbot/core"
)

const (
	// MicrosPerCm is the round-trip echo time per centimetre at room temperature.
	MicrosPerCm = 58

	// MaxDistanceCm bounds the echo wait of Distance.
	MaxDistanceCm = 500

	// MaxRangeCm is the widest bound Measure accepts: three panel digits.
	MaxRangeCm = 999

	triggerSettleUs = 2
	triggerPulseUs  = 10
)

// Reading is one ultrasonic measurement. Echo is false when no echo arrived
// within the timeout; Centimeters and Micros are zero in that case.
type Reading struct {
	Centimeters uint32
	Micros      uint32
	Echo        bool
}

// Compat returns the distance the way the block reports it: no echo reads as 0.
func (r Reading) Compat() int {
	if !r.Echo {
		return 0
	}
	return int(r.Centimeters)
}

// Ranger drives an HC-SR04 style sensor: a trigger line and an echo line.
type Ranger struct {
	gpio  core.GPIODriver
	clock core.Clock
	trig  core.GPIOPin
	echo  core.GPIOPin
}

// NewRanger returns a ranger on the given lines.
func NewRanger(gpio core.GPIODriver, clock core.Clock, trig, echo core.GPIOPin) *Ranger {
	return &Ranger{gpio: gpio, clock: clock, trig: trig, echo: echo}
}

// Measure emits one trigger pulse and times the echo. The echo wait and the
// measured width are both bounded by maxCm*MicrosPerCm microseconds, so the
// result never exceeds maxCm. maxCm of zero means MaxDistanceCm; larger
// than MaxRangeCm is clamped to it.
func (r *Ranger) Measure(maxCm uint32) (Reading, error) {
	if maxCm == 0 {
		maxCm = MaxDistanceCm
	}
	maxCm = min(maxCm, MaxRangeCm)
	timeout := maxCm * MicrosPerCm

	if err := r.trigger(); err != nil {
		return Reading{}, fmt.Errorf("trigger on pin %d: %w", r.trig, err)
	}

	pulse, err := r.gpio.PulseIn(r.echo, true, timeout)
	if err != nil {
		return Reading{}, fmt.Errorf("echo on pin %d: %w", r.echo, err)
	}

	now := uint32(r.clock.Micros())
	if !pulse.Valid {
		core.RecordTiming(core.EvtNoEcho, uint8(r.echo), now, 0, timeout)
		core.DebugAsync("no echo on pin " + core.Itoa(int(r.echo)))
		return Reading{}, nil
	}

	us := pulse.Micros
	if us > timeout {
		us = timeout
	}
	core.RecordTiming(core.EvtEcho, uint8(r.echo), now, us, timeout)
	return Reading{Centimeters: us / MicrosPerCm, Micros: us, Echo: true}, nil
}

// Distance measures with the stock 500 cm bound and returns centimetres,
// 0 when nothing echoed back.
func (r *Ranger) Distance() (int, error) {
	reading, err := r.Measure(MaxDistanceCm)
	if err != nil {
		return 0, err
	}
	return reading.Compat(), nil
}

// trigger emits low(2us) high(10us) low on the trigger line.
func (r *Ranger) trigger() error {
	if err := r.gpio.SetPull(r.trig, core.PullNone); err != nil {
		return err
	}
	if err := r.gpio.SetPin(r.trig, false); err != nil {
		return err
	}
	r.clock.WaitMicros(triggerSettleUs)
	if err := r.gpio.SetPin(r.trig, true); err != nil {
		return err
	}
	r.clock.WaitMicros(triggerPulseUs)
	if err := r.gpio.SetPin(r.trig, false); err != nil {
		return err
	}
	core.RecordTiming(core.EvtTrigger, uint8(r.trig), uint32(r.clock.Micros()), 0, 0)
	return nil
}
