//go:build microbit_v2

package main

import (
	"errors"
	"machine"

	"plumbot/core"
)

// motorPeriod is the PWM period in nanoseconds (1 kHz)
const motorPeriod = 1e6

// pwmPeripheral abstracts over TinyGo's unexported PWM type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type pwmLine struct {
	pwm     pwmPeripheral
	channel uint8
}

// MicrobitPWMDriver implements core.PWMDriver. Each nRF52 PWM instance
// drives up to four channels; lines are assigned to instances in the
// order they are first used.
type MicrobitPWMDriver struct {
	free  []pwmPeripheral
	used  []pwmPeripheral
	lines map[core.PWMPin]pwmLine
}

func NewMicrobitPWMDriver() *MicrobitPWMDriver {
	return &MicrobitPWMDriver{
		free:  []pwmPeripheral{machine.PWM0, machine.PWM1, machine.PWM2},
		lines: make(map[core.PWMPin]pwmLine),
	}
}

func (d *MicrobitPWMDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	line, ok := d.lines[pin]
	if !ok {
		var err error
		if line, err = d.configure(pin); err != nil {
			return err
		}
	}
	line.pwm.Set(line.channel, core.ScalePWM(value, line.pwm.Top()))
	return nil
}

func (d *MicrobitPWMDriver) configure(pin core.PWMPin) (pwmLine, error) {
	p, err := edgePin(uint32(pin))
	if err != nil {
		return pwmLine{}, err
	}
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// try instances already running before starting a new one
	for _, pwm := range d.used {
		if ch, err := pwm.Channel(p); err == nil {
			line := pwmLine{pwm: pwm, channel: ch}
			d.lines[pin] = line
			return line, nil
		}
	}
	if len(d.free) == 0 {
		return pwmLine{}, errors.New("out of PWM channels")
	}
	pwm := d.free[0]
	if err := pwm.Configure(machine.PWMConfig{Period: motorPeriod}); err != nil {
		return pwmLine{}, err
	}
	ch, err := pwm.Channel(p)
	if err != nil {
		return pwmLine{}, err
	}
	d.free = d.free[1:]
	d.used = append(d.used, pwm)

	line := pwmLine{pwm: pwm, channel: ch}
	d.lines[pin] = line
	return line, nil
}
