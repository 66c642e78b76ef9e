package robot

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"plumbot/core"
	"plumbot/sim"
)

func TestPanelInitAddress(t *testing.T) {
	c := qt.New(t)
	s := sim.NewScreen()
	c.Assert(NewPanel(s).Init(), qt.IsNil)
	c.Assert(s.Address(), qt.Equals, uint8(OLEDAddress))
}

func TestShowLineValues(t *testing.T) {
	tests := []struct {
		left, right core.ADCValue
		want        string
	}{
		{512, 87, "Line_L Line_R\n 512     87"},
		{0, 998, "Line_L Line_R\n 0       998"},
		{999, 1023, "Line_L Line_R\n999     1023"},
	}
	for _, tt := range tests {
		c := qt.New(t)
		s := sim.NewScreen()
		p := NewPanel(s)
		c.Assert(p.ShowLineValues(tt.left, tt.right), qt.IsNil)
		c.Assert(s.String(), qt.Equals, tt.want)
	}
}

func TestShowLineValuesRedraw(t *testing.T) {
	c := qt.New(t)
	s := sim.NewScreen()
	p := NewPanel(s)

	c.Assert(p.ShowLineValues(900, 5), qt.IsNil)
	c.Assert(p.ShowLineValues(1000, 5), qt.IsNil)
	c.Assert(s.Row(1), qt.Equals, "1000     5")

	// shorter values only replace the digits they cover
	c.Assert(p.ShowLineValues(512, 5), qt.IsNil)
	c.Assert(p.ShowLineValues(7, 5), qt.IsNil)
	c.Assert(s.Row(1), qt.Equals, " 712     5")
}

func TestShowDistance(t *testing.T) {
	c := qt.New(t)
	s := sim.NewScreen()
	p := NewPanel(s)

	c.Assert(p.ShowDistance(42), qt.IsNil)
	c.Assert(s.Row(0), qt.Equals, "42 cm")

	c.Assert(p.ShowDistance(250), qt.IsNil)
	c.Assert(s.Row(0), qt.Equals, "250cm")
}

func TestShowNumberNegative(t *testing.T) {
	c := qt.New(t)
	s := sim.NewScreen()
	c.Assert(NewPanel(s).ShowNumber(2, 5, -17), qt.IsNil)
	c.Assert(s.Row(5), qt.Equals, "  -17")
}
