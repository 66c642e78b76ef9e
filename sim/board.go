// Package sim provides a virtual-time robot board implementing every
// core driver, for tests and the host simulator.
package sim

import (
	"sync"

	"plumbot/core"
)

// Op names a recorded driver operation.
type Op uint8

const (
	OpPull Op = iota + 1
	OpWrite
	OpWait
	OpPulseIn
	OpDuty
	OpAnalogRead
)

func (o Op) String() string {
	switch o {
	case OpPull:
		return "pull"
	case OpWrite:
		return "write"
	case OpWait:
		return "wait"
	case OpPulseIn:
		return "pulsein"
	case OpDuty:
		return "duty"
	case OpAnalogRead:
		return "analog"
	}
	return "op?"
}

// Event is one recorded driver call. Value holds the level (0/1), pull
// mode, wait or timeout micros, or duty depending on Op.
type Event struct {
	Op    Op
	Pin   uint32
	Value uint32
	At    uint64 // virtual micros when the call started
}

// Echo scripts one answer of PulseIn.
type Echo struct {
	Present bool
	Delay   uint32 // micros until the line rises
	Width   uint32 // micros the line stays high
}

// EchoAfter returns an echo that rises after delay and lasts width.
func EchoAfter(delay, width uint32) Echo {
	return Echo{Present: true, Delay: delay, Width: width}
}

// NoEcho returns an echo that never arrives.
func NoEcho() Echo {
	return Echo{}
}

// Board is a simulated robot board. Time only advances through
// WaitMicros and PulseIn, so runs are deterministic.
type Board struct {
	*Screen

	mu     sync.Mutex
	now    uint64
	events []Event
	levels map[core.GPIOPin]bool
	pulls  map[core.GPIOPin]core.PullMode
	analog map[core.ADCPin]core.ADCValue
	duties map[core.PWMPin]core.PWMValue
	echoes []Echo
	faults map[Op]error
}

func NewBoard() *Board {
	return &Board{
		Screen: NewScreen(),
		levels: make(map[core.GPIOPin]bool),
		pulls:  make(map[core.GPIOPin]core.PullMode),
		analog: make(map[core.ADCPin]core.ADCValue),
		duties: make(map[core.PWMPin]core.PWMValue),
		faults: make(map[Op]error),
	}
}

// HAL returns the board as a complete driver set.
func (b *Board) HAL() core.HAL {
	return core.HAL{GPIO: b, ADC: b, PWM: b, Clock: b, Display: b}
}

// SetAnalog sets the value ReadRaw returns for pin.
func (b *Board) SetAnalog(pin core.ADCPin, v core.ADCValue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analog[pin] = v
}

// QueueEcho appends answers for subsequent PulseIn calls. With the queue
// empty PulseIn behaves as NoEcho.
func (b *Board) QueueEcho(echoes ...Echo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.echoes = append(b.echoes, echoes...)
}

// Fail makes every later call of op return err; nil clears it.
// Waits have no error return, so Fail panics for OpWait.
func (b *Board) Fail(op Op, err error) {
	if op == OpWait {
		panic("sim: waits cannot fail")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.faults, op)
		return
	}
	b.faults[op] = err
}

// Events returns a copy of the recorded calls.
func (b *Board) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event(nil), b.events...)
}

// ResetEvents forgets the recorded calls.
func (b *Board) ResetEvents() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

// Level returns the last level written to or seen on pin.
func (b *Board) Level(pin core.GPIOPin) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels[pin]
}

// Pull returns the bias last configured on pin.
func (b *Board) Pull(pin core.GPIOPin) core.PullMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pulls[pin]
}

// Duty returns the last duty written to pin.
func (b *Board) Duty(pin core.PWMPin) core.PWMValue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.duties[pin]
}

func (b *Board) record(op Op, pin, value uint32) error {
	b.log(op, pin, value)
	return b.faults[op]
}

func (b *Board) log(op Op, pin, value uint32) {
	b.events = append(b.events, Event{Op: op, Pin: pin, Value: value, At: b.now})
}

func (b *Board) SetPull(pin core.GPIOPin, mode core.PullMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(OpPull, uint32(pin), uint32(mode)); err != nil {
		return err
	}
	b.pulls[pin] = mode
	return nil
}

func (b *Board) SetPin(pin core.GPIOPin, value bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(OpWrite, uint32(pin), boolValue(value)); err != nil {
		return err
	}
	b.levels[pin] = value
	return nil
}

func (b *Board) GetPin(pin core.GPIOPin) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels[pin], nil
}

// PulseIn consumes the next scripted echo. Only rising (high) pulses are
// scripted; waiting for a low pulse times out.
func (b *Board) PulseIn(pin core.GPIOPin, level bool, timeoutUs uint32) (core.Pulse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(OpPulseIn, uint32(pin), timeoutUs); err != nil {
		return core.Pulse{}, err
	}

	var echo Echo
	if len(b.echoes) > 0 {
		echo = b.echoes[0]
		b.echoes = b.echoes[1:]
	}

	if !level || !echo.Present || echo.Delay >= timeoutUs {
		b.now += uint64(timeoutUs)
		return core.Pulse{}, nil
	}

	b.now += uint64(echo.Delay)
	width := echo.Width
	if width > timeoutUs {
		width = timeoutUs
	}
	b.now += uint64(width)
	b.levels[pin] = false
	return core.Pulse{Micros: width, Valid: true}, nil
}

func (b *Board) ReadRaw(pin core.ADCPin) (core.ADCValue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.analog[pin]
	if err := b.record(OpAnalogRead, uint32(pin), uint32(v)); err != nil {
		return 0, err
	}
	return v, nil
}

func (b *Board) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(OpDuty, uint32(pin), uint32(value)); err != nil {
		return err
	}
	if value > core.PWMMax {
		value = core.PWMMax
	}
	b.duties[pin] = value
	return nil
}

// WaitMicros advances virtual time.
func (b *Board) WaitMicros(us uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log(OpWait, 0, us)
	b.now += uint64(us)
}

func (b *Board) Micros() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now
}

func boolValue(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
