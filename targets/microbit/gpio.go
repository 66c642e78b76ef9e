//go:build microbit_v2

package main

import (
	"errors"
	"machine"

	"plumbot/core"
)

var errNoSuchPin = errors.New("no such edge connector pin")

// edgePins maps the numbered edge connector lines to nRF52833 pins.
var edgePins = map[uint32]machine.Pin{
	0: machine.P0, 1: machine.P1, 2: machine.P2, 3: machine.P3,
	4: machine.P4, 5: machine.P5, 6: machine.P6, 7: machine.P7,
	8: machine.P8, 9: machine.P9, 10: machine.P10, 11: machine.P11,
	12: machine.P12, 13: machine.P13, 14: machine.P14, 15: machine.P15,
	16: machine.P16,
}

func edgePin(n uint32) (machine.Pin, error) {
	p, ok := edgePins[n]
	if !ok {
		return machine.NoPin, errNoSuchPin
	}
	return p, nil
}

type pinMode uint8

const (
	modeUnset pinMode = iota
	modeInput
	modeOutput
)

// MicrobitGPIODriver implements core.GPIODriver on the edge connector
type MicrobitGPIODriver struct {
	clock core.Clock
	modes map[core.GPIOPin]pinMode
	pulls map[core.GPIOPin]core.PullMode
}

func NewMicrobitGPIODriver(clock core.Clock) *MicrobitGPIODriver {
	return &MicrobitGPIODriver{
		clock: clock,
		modes: make(map[core.GPIOPin]pinMode),
		pulls: make(map[core.GPIOPin]core.PullMode),
	}
}

// SetPull records the bias and applies it if the line is an input
func (d *MicrobitGPIODriver) SetPull(pin core.GPIOPin, mode core.PullMode) error {
	p, err := edgePin(uint32(pin))
	if err != nil {
		return err
	}
	d.pulls[pin] = mode
	if d.modes[pin] == modeInput {
		p.Configure(machine.PinConfig{Mode: inputMode(mode)})
	}
	return nil
}

func (d *MicrobitGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	p, err := edgePin(uint32(pin))
	if err != nil {
		return err
	}
	if d.modes[pin] != modeOutput {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		d.modes[pin] = modeOutput
	}
	p.Set(value)
	return nil
}

func (d *MicrobitGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, err := d.input(pin)
	if err != nil {
		return false, err
	}
	return p.Get(), nil
}

// PulseIn polls the line against the microsecond clock
func (d *MicrobitGPIODriver) PulseIn(pin core.GPIOPin, level bool, timeoutUs uint32) (core.Pulse, error) {
	p, err := d.input(pin)
	if err != nil {
		return core.Pulse{}, err
	}
	timeout := uint64(timeoutUs)

	start := d.clock.Micros()
	for p.Get() != level {
		if d.clock.Micros()-start >= timeout {
			return core.Pulse{}, nil
		}
	}

	rise := d.clock.Micros()
	for p.Get() == level {
		if d.clock.Micros()-rise >= timeout {
			break
		}
	}
	width := d.clock.Micros() - rise
	if width > timeout {
		width = timeout
	}
	return core.Pulse{Micros: uint32(width), Valid: true}, nil
}

func (d *MicrobitGPIODriver) input(pin core.GPIOPin) (machine.Pin, error) {
	p, err := edgePin(uint32(pin))
	if err != nil {
		return p, err
	}
	if d.modes[pin] != modeInput {
		p.Configure(machine.PinConfig{Mode: inputMode(d.pulls[pin])})
		d.modes[pin] = modeInput
	}
	return p, nil
}

func inputMode(mode core.PullMode) machine.PinMode {
	switch mode {
	case core.PullUp:
		return machine.PinInputPullup
	case core.PullDown:
		return machine.PinInputPulldown
	}
	return machine.PinInput
}
