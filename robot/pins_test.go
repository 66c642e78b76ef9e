package robot

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDefaultPinsValid(t *testing.T) {
	c := qt.New(t)
	c.Assert(DefaultPins().Validate(), qt.IsNil)
}

func TestPinsValidateConflicts(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Pins)
		want   string
	}{
		{"line", func(p *Pins) { p.RightLine = p.LeftLine }, "line sensors on analog 3: pin assigned twice"},
		{"sonar", func(p *Pins) { p.Echo = p.Trigger }, "trigger and echo on digital 12: pin assigned twice"},
		{"motor", func(p *Pins) { p.RightReverse = p.LeftForward }, "motor lines on analog 13: pin assigned twice"},
	}
	for _, tt := range tests {
		c := qt.New(t)
		p := DefaultPins()
		tt.modify(&p)
		err := p.Validate()
		c.Assert(err, qt.ErrorIs, ErrPinConflict, qt.Commentf("%s", tt.name))
		c.Assert(err, qt.ErrorMatches, tt.want)
	}
}

func TestPinsClassesMayShareNumbers(t *testing.T) {
	c := qt.New(t)
	p := DefaultPins()
	// an analog input and a digital line are different peripherals
	p.Trigger = 3
	c.Assert(p.Validate(), qt.IsNil)
}
