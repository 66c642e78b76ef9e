package sim

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"plumbot/core"
)

func TestPulseInScriptedEcho(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	b.QueueEcho(EchoAfter(100, 580))

	p, err := b.PulseIn(11, true, 29000)
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, core.Pulse{Micros: 580, Valid: true})
	c.Assert(b.Micros(), qt.Equals, uint64(680))
}

func TestPulseInNoEchoConsumesTimeout(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	b.QueueEcho(NoEcho())

	p, err := b.PulseIn(11, true, 5800)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Valid, qt.IsFalse)
	c.Assert(b.Micros(), qt.Equals, uint64(5800))

	// empty queue behaves the same
	p, err = b.PulseIn(11, true, 100)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Valid, qt.IsFalse)
}

func TestPulseInLateRiseIsNoEcho(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	b.QueueEcho(EchoAfter(6000, 10))

	p, err := b.PulseIn(11, true, 5800)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Valid, qt.IsFalse)
}

func TestPulseInCapsWidth(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	b.QueueEcho(EchoAfter(0, 90000))

	p, err := b.PulseIn(11, true, 29000)
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, core.Pulse{Micros: 29000, Valid: true})
}

func TestEventsRecordOrder(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()

	c.Assert(b.SetPull(12, core.PullNone), qt.IsNil)
	c.Assert(b.SetPin(12, true), qt.IsNil)
	b.WaitMicros(10)
	c.Assert(b.SetDutyCycle(13, 2000), qt.IsNil)

	c.Assert(b.Events(), qt.DeepEquals, []Event{
		{Op: OpPull, Pin: 12, Value: uint32(core.PullNone), At: 0},
		{Op: OpWrite, Pin: 12, Value: 1, At: 0},
		{Op: OpWait, Value: 10, At: 0},
		{Op: OpDuty, Pin: 13, Value: 2000, At: 10},
	})
	c.Assert(b.Level(12), qt.IsTrue)
	c.Assert(b.Duty(13), qt.Equals, core.PWMValue(core.PWMMax))

	b.ResetEvents()
	c.Assert(b.Events(), qt.HasLen, 0)
}

func TestFailInjectsErrors(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	boom := errors.New("boom")

	b.Fail(OpAnalogRead, boom)
	_, err := b.ReadRaw(3)
	c.Assert(err, qt.ErrorIs, boom)

	b.Fail(OpAnalogRead, nil)
	b.SetAnalog(3, 812)
	v, err := b.ReadRaw(3)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, core.ADCValue(812))
}

func TestFailRejectsWaits(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	c.Assert(func() { b.Fail(OpWait, errors.New("boom")) }, qt.PanicMatches, "sim: waits cannot fail")

	b.WaitMicros(10)
	c.Assert(b.Micros(), qt.Equals, uint64(10))
	c.Assert(b.Events(), qt.DeepEquals, []Event{{Op: OpWait, Value: 10}})
}

func TestBoardIsHAL(t *testing.T) {
	c := qt.New(t)
	b := NewBoard()
	hal := b.HAL()
	c.Assert(hal.GPIO, qt.Equals, core.GPIODriver(b))
	c.Assert(hal.Display, qt.Equals, core.DisplayDriver(b))
}

func TestOpString(t *testing.T) {
	c := qt.New(t)
	c.Assert(OpPulseIn.String(), qt.Equals, "pulsein")
	c.Assert(Op(0).String(), qt.Equals, "op?")
}
