package robot

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"plumbot/core"
	"plumbot/sim"
)

func lineDuties(b *sim.Board) [4]core.PWMValue {
	p := DefaultPins()
	return [4]core.PWMValue{
		b.Duty(p.LeftForward), b.Duty(p.LeftReverse),
		b.Duty(p.RightForward), b.Duty(p.RightReverse),
	}
}

func TestDriveDirections(t *testing.T) {
	tests := []struct {
		name string
		call func(*Drive) error
		want [4]core.PWMValue
	}{
		{"forward", (*Drive).MoveForward, [4]core.PWMValue{1023, 0, 1023, 0}},
		{"backward", (*Drive).MoveBackward, [4]core.PWMValue{0, 1023, 0, 1023}},
		{"left", (*Drive).TurnLeft, [4]core.PWMValue{0, 1023, 1023, 0}},
		{"right", (*Drive).TurnRight, [4]core.PWMValue{1023, 0, 0, 1023}},
		{"stop", (*Drive).Stop, [4]core.PWMValue{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		c := qt.New(t)
		b := sim.NewBoard()
		d := NewDrive(b, DefaultPins())

		c.Assert(tt.call(d), qt.IsNil)
		c.Assert(lineDuties(b), qt.Equals, tt.want, qt.Commentf("%s", tt.name))

		// all four lines written, in pin order
		var pins []uint32
		for _, e := range b.Events() {
			c.Assert(e.Op, qt.Equals, sim.OpDuty)
			pins = append(pins, e.Pin)
		}
		c.Assert(pins, qt.DeepEquals, []uint32{13, 14, 15, 16})
	}
}

func TestStopAfterAnyDirection(t *testing.T) {
	c := qt.New(t)
	for _, dir := range []Direction{Forward, Backward, SpinLeft, SpinRight} {
		b := sim.NewBoard()
		d := NewDrive(b, DefaultPins())
		c.Assert(d.Apply(dir), qt.IsNil)
		c.Assert(d.Stop(), qt.IsNil)
		c.Assert(lineDuties(b), qt.Equals, [4]core.PWMValue{}, qt.Commentf("after %s", dir))
	}
}

func TestDriveHasNoMemory(t *testing.T) {
	c := qt.New(t)
	seq := sim.NewBoard()
	d := NewDrive(seq, DefaultPins())
	c.Assert(d.MoveForward(), qt.IsNil)
	c.Assert(d.TurnLeft(), qt.IsNil)
	c.Assert(d.Stop(), qt.IsNil)

	once := sim.NewBoard()
	c.Assert(NewDrive(once, DefaultPins()).Stop(), qt.IsNil)
	c.Assert(lineDuties(seq), qt.Equals, lineDuties(once))
}

func TestDriveCustomPins(t *testing.T) {
	c := qt.New(t)
	b := sim.NewBoard()
	pins := DefaultPins()
	pins.LeftForward, pins.LeftReverse, pins.RightForward, pins.RightReverse = 0, 1, 2, 8

	c.Assert(NewDrive(b, pins).TurnRight(), qt.IsNil)
	c.Assert(b.Duty(0), qt.Equals, core.PWMValue(1023))
	c.Assert(b.Duty(8), qt.Equals, core.PWMValue(1023))
	c.Assert(b.Duty(1), qt.Equals, core.PWMValue(0))
}

func TestDriveAttemptsEveryLine(t *testing.T) {
	c := qt.New(t)
	b := sim.NewBoard()
	boom := errors.New("pwm off")
	b.Fail(sim.OpDuty, boom)

	err := NewDrive(b, DefaultPins()).Stop()
	c.Assert(err, qt.ErrorIs, boom)
	c.Assert(b.Events(), qt.HasLen, 4)
}

func TestUnknownDirection(t *testing.T) {
	c := qt.New(t)
	b := sim.NewBoard()
	err := NewDrive(b, DefaultPins()).Apply(Direction(42))
	c.Assert(err, qt.ErrorIs, errUnknownDirection)
	c.Assert(b.Events(), qt.HasLen, 0)

	_, ok := Duties(Direction(42))
	c.Assert(ok, qt.IsFalse)
	c.Assert(Direction(42).String(), qt.Equals, "unknown")
}
