// Package rpi runs the robot blocks on a Linux single-board computer
// through periph.io: GPIO for the ultrasonic sensor, hardware PWM for the
// motor lines and an ADS1115 on I2C for the line sensors.
package rpi

import (
	"errors"
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"

	"plumbot/core"
	"plumbot/robot"
)

// Config names the header pins that stand in for the robot board lines.
type Config struct {
	Trigger      string `yaml:"trigger"`
	Echo         string `yaml:"echo"`
	LeftForward  string `yaml:"left_forward"`
	LeftReverse  string `yaml:"left_reverse"`
	RightForward string `yaml:"right_forward"`
	RightReverse string `yaml:"right_reverse"`

	// I2CBus is the bus of the ADS1115, "" for the first one
	I2CBus string `yaml:"i2c_bus"`

	// ADC channels of the two line sensors, 0..3
	LeftChannel  int `yaml:"left_channel"`
	RightChannel int `yaml:"right_channel"`

	// PWMHz is the motor PWM carrier frequency
	PWMHz int `yaml:"pwm_hz"`
}

// DefaultConfig uses the four hardware PWM capable pins of the Pi header
// for the motors.
func DefaultConfig() Config {
	return Config{
		Trigger:      "GPIO23",
		Echo:         "GPIO24",
		LeftForward:  "GPIO12",
		LeftReverse:  "GPIO13",
		RightForward: "GPIO18",
		RightReverse: "GPIO19",
		LeftChannel:  0,
		RightChannel: 1,
		PWMHz:        1000,
	}
}

// ads1115Bits is the resolution of a single-ended ADS1115 reading.
const ads1115Bits = 15

var errNoPin = errors.New("pin not wired")

// Board implements the core GPIO, ADC and PWM drivers on periph pins.
type Board struct {
	*core.SystemClock

	gpio map[core.GPIOPin]gpio.PinIO
	pwm  map[core.PWMPin]gpio.PinIO
	adc  map[core.ADCPin]analog.PinADC
	freq physic.Frequency

	bus     i2c.BusCloser
	display *TextDisplay
}

// Open initialises periph, resolves every configured pin and maps it to
// the robot line it replaces. Display output is rendered as text on out.
func Open(cfg Config, pins robot.Pins, out io.Writer) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}

	b := &Board{
		SystemClock: core.NewSystemClock(),
		gpio:        make(map[core.GPIOPin]gpio.PinIO),
		pwm:         make(map[core.PWMPin]gpio.PinIO),
		adc:         make(map[core.ADCPin]analog.PinADC),
		freq:        physic.Frequency(cfg.PWMHz) * physic.Hertz,
		display:     NewTextDisplay(out),
	}

	for _, m := range []struct {
		line core.GPIOPin
		name string
	}{
		{pins.Trigger, cfg.Trigger},
		{pins.Echo, cfg.Echo},
	} {
		p, err := byName(m.name)
		if err != nil {
			return nil, err
		}
		b.gpio[m.line] = p
	}

	for _, m := range []struct {
		line core.PWMPin
		name string
	}{
		{pins.LeftForward, cfg.LeftForward},
		{pins.LeftReverse, cfg.LeftReverse},
		{pins.RightForward, cfg.RightForward},
		{pins.RightReverse, cfg.RightReverse},
	} {
		p, err := byName(m.name)
		if err != nil {
			return nil, err
		}
		b.pwm[m.line] = p
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus %q: %w", cfg.I2CBus, err)
	}
	b.bus = bus

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("ADS1115: %w", err)
	}
	for _, m := range []struct {
		line    core.ADCPin
		channel int
	}{
		{pins.LeftLine, cfg.LeftChannel},
		{pins.RightLine, cfg.RightChannel},
	} {
		ch, err := channel(m.channel)
		if err != nil {
			bus.Close()
			return nil, err
		}
		p, err := adc.PinForChannel(ch, 5*physic.Volt, 1*physic.KiloHertz, ads1x15.SaveEnergy)
		if err != nil {
			bus.Close()
			return nil, fmt.Errorf("ADS1115 channel %d: %w", m.channel, err)
		}
		b.adc[m.line] = p
	}

	return b, nil
}

// HAL returns the board drivers with the text display.
func (b *Board) HAL() core.HAL {
	return core.HAL{GPIO: b, ADC: b, PWM: b, Clock: b, Display: b.display}
}

// Close stops the motors and releases the I2C bus.
func (b *Board) Close() error {
	var errs []error
	for line := range b.pwm {
		errs = append(errs, b.SetDutyCycle(line, 0))
	}
	for _, p := range b.adc {
		errs = append(errs, p.Halt())
	}
	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}
	return errors.Join(errs...)
}

func (b *Board) SetPull(pin core.GPIOPin, mode core.PullMode) error {
	p, err := b.digital(pin)
	if err != nil {
		return err
	}
	return p.In(pull(mode), gpio.NoEdge)
}

func (b *Board) SetPin(pin core.GPIOPin, value bool) error {
	p, err := b.digital(pin)
	if err != nil {
		return err
	}
	return p.Out(gpio.Level(value))
}

func (b *Board) GetPin(pin core.GPIOPin) (bool, error) {
	p, err := b.digital(pin)
	if err != nil {
		return false, err
	}
	return bool(p.Read()), nil
}

// PulseIn waits for the line to reach level using edge interrupts, then
// times how long it stays there. Both waits share the timeout budget
// rule of core.GPIODriver.
func (b *Board) PulseIn(pin core.GPIOPin, level bool, timeoutUs uint32) (core.Pulse, error) {
	p, err := b.digital(pin)
	if err != nil {
		return core.Pulse{}, err
	}
	if err := p.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return core.Pulse{}, err
	}

	budget := time.Duration(timeoutUs) * time.Microsecond
	want := gpio.Level(level)

	if !waitLevel(p, want, budget) {
		return core.Pulse{}, nil
	}
	rise := time.Now()
	waitLevel(p, !want, budget)

	width := time.Since(rise)
	if width > budget {
		width = budget
	}
	return core.Pulse{Micros: uint32(width / time.Microsecond), Valid: true}, nil
}

func (b *Board) ReadRaw(pin core.ADCPin) (core.ADCValue, error) {
	p, ok := b.adc[pin]
	if !ok {
		return 0, fmt.Errorf("analog %d: %w", pin, errNoPin)
	}
	s, err := p.Read()
	if err != nil {
		return 0, err
	}
	if s.Raw < 0 {
		return 0, nil
	}
	return core.ScaleADC(uint32(s.Raw), ads1115Bits), nil
}

func (b *Board) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	p, ok := b.pwm[pin]
	if !ok {
		return fmt.Errorf("pwm %d: %w", pin, errNoPin)
	}
	duty := gpio.Duty(core.ScalePWM(value, uint32(gpio.DutyMax)))
	return p.PWM(duty, b.freq)
}

func (b *Board) digital(pin core.GPIOPin) (gpio.PinIO, error) {
	p, ok := b.gpio[pin]
	if !ok {
		return nil, fmt.Errorf("digital %d: %w", pin, errNoPin)
	}
	return p, nil
}

// waitLevel blocks until p reads want or budget runs out.
func waitLevel(p gpio.PinIO, want gpio.Level, budget time.Duration) bool {
	deadline := time.Now().Add(budget)
	for p.Read() != want {
		left := time.Until(deadline)
		if left <= 0 || !p.WaitForEdge(left) {
			return p.Read() == want
		}
	}
	return true
}

func byName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", name)
	}
	return p, nil
}

func pull(mode core.PullMode) gpio.Pull {
	switch mode {
	case core.PullUp:
		return gpio.PullUp
	case core.PullDown:
		return gpio.PullDown
	}
	return gpio.Float
}

func channel(n int) (ads1x15.Channel, error) {
	switch n {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("ADS1115 has no channel %d", n)
}
