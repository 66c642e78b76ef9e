package robot

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"plumbot/core"
	"plumbot/sim"
)

func newRangerBoard() (*sim.Board, *Ranger) {
	b := sim.NewBoard()
	pins := DefaultPins()
	return b, NewRanger(b, b, pins.Trigger, pins.Echo)
}

func TestMeasureDividesByMicrosPerCm(t *testing.T) {
	tests := []struct {
		width uint32
		want  uint32
	}{
		{width: 0, want: 0},
		{width: 57, want: 0},
		{width: 58, want: 1},
		{width: 1160, want: 20},
		{width: 1217, want: 20},
		{width: 29000, want: 500},
	}
	for _, tt := range tests {
		c := qt.New(t)
		b, r := newRangerBoard()
		b.QueueEcho(sim.EchoAfter(300, tt.width))

		got, err := r.Measure(500)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, Reading{Centimeters: tt.want, Micros: tt.width, Echo: true}, qt.Commentf("width %d", tt.width))
	}
}

func TestMeasureCapsAtMaxDistance(t *testing.T) {
	c := qt.New(t)
	b, r := newRangerBoard()
	b.QueueEcho(sim.EchoAfter(10, 20000))

	got, err := r.Measure(100)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, Reading{Centimeters: 100, Micros: 5800, Echo: true})
}

func TestMeasureZeroMaxUsesDefault(t *testing.T) {
	c := qt.New(t)
	b, r := newRangerBoard()

	_, err := r.Measure(0)
	c.Assert(err, qt.IsNil)

	ev := b.Events()
	last := ev[len(ev)-1]
	c.Assert(last.Op, qt.Equals, sim.OpPulseIn)
	c.Assert(last.Value, qt.Equals, uint32(MaxDistanceCm*MicrosPerCm))
}

func TestMeasureClampsMaxToPanelRange(t *testing.T) {
	c := qt.New(t)
	b, r := newRangerBoard()
	b.QueueEcho(sim.EchoAfter(10, 58*1234))

	got, err := r.Measure(80000000)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, Reading{Centimeters: MaxRangeCm, Micros: MaxRangeCm * MicrosPerCm, Echo: true})

	ev := b.Events()
	last := ev[len(ev)-1]
	c.Assert(last.Op, qt.Equals, sim.OpPulseIn)
	c.Assert(last.Value, qt.Equals, uint32(MaxRangeCm*MicrosPerCm))
}

func TestNoEchoReadsZero(t *testing.T) {
	c := qt.New(t)
	b, r := newRangerBoard()
	b.QueueEcho(sim.NoEcho())

	got, err := r.Measure(500)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Echo, qt.IsFalse)
	c.Assert(got.Compat(), qt.Equals, 0)

	b.QueueEcho(sim.NoEcho())
	d, err := r.Distance()
	c.Assert(err, qt.IsNil)
	c.Assert(d, qt.Equals, 0)
}

func TestDistanceCompat(t *testing.T) {
	c := qt.New(t)
	b, r := newRangerBoard()
	b.QueueEcho(sim.EchoAfter(200, 58*37+20))

	d, err := r.Distance()
	c.Assert(err, qt.IsNil)
	c.Assert(d, qt.Equals, 37)
}

func TestTriggerSequenceOncePerMeasure(t *testing.T) {
	for _, echo := range []sim.Echo{sim.EchoAfter(100, 580), sim.NoEcho()} {
		c := qt.New(t)
		b, r := newRangerBoard()
		b.QueueEcho(echo)

		_, err := r.Measure(200)
		c.Assert(err, qt.IsNil)

		var got []sim.Event
		for _, e := range b.Events() {
			e.At = 0
			got = append(got, e)
		}
		c.Assert(got, qt.DeepEquals, []sim.Event{
			{Op: sim.OpPull, Pin: 12, Value: uint32(core.PullNone)},
			{Op: sim.OpWrite, Pin: 12, Value: 0},
			{Op: sim.OpWait, Value: 2},
			{Op: sim.OpWrite, Pin: 12, Value: 1},
			{Op: sim.OpWait, Value: 10},
			{Op: sim.OpWrite, Pin: 12, Value: 0},
			{Op: sim.OpPulseIn, Pin: 11, Value: 200 * MicrosPerCm},
		}, qt.Commentf("echo %+v", echo))
	}
}

func TestMeasureWrapsDriverErrors(t *testing.T) {
	c := qt.New(t)
	b, r := newRangerBoard()
	boom := errors.New("bus fault")

	b.Fail(sim.OpPulseIn, boom)
	_, err := r.Measure(10)
	c.Assert(err, qt.ErrorIs, boom)
	c.Assert(err, qt.ErrorMatches, "echo on pin 11: bus fault")

	b.Fail(sim.OpPulseIn, nil)
	b.Fail(sim.OpWrite, boom)
	_, err = r.Measure(10)
	c.Assert(err, qt.ErrorMatches, "trigger on pin 12: bus fault")
}

func TestMeasureRecordsTiming(t *testing.T) {
	c := qt.New(t)
	core.ClearTimingRing()
	defer core.ClearTimingRing()

	b, r := newRangerBoard()
	b.QueueEcho(sim.EchoAfter(0, 116), sim.NoEcho())
	_, err := r.Measure(10)
	c.Assert(err, qt.IsNil)
	_, err = r.Measure(10)
	c.Assert(err, qt.IsNil)

	var kinds []uint8
	for _, ev := range core.TimingEvents() {
		kinds = append(kinds, ev.EventType)
	}
	c.Assert(kinds, qt.DeepEquals, []uint8{core.EvtTrigger, core.EvtEcho, core.EvtTrigger, core.EvtNoEcho})
}
