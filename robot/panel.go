package robot

import (
	"plumbot/core"
)

// OLEDAddress is the 7-bit I2C address of the 128x64 panel (0x3C).
const OLEDAddress = 60

// LineHeader is the first row of the line-sensor screen.
const LineHeader = "Line_L Line_R"

// wideReading is the first value that needs four columns.
const wideReading = 999

// Panel writes the robot's screens to a character display.
type Panel struct {
	d core.DisplayDriver
}

func NewPanel(d core.DisplayDriver) *Panel {
	return &Panel{d: d}
}

// Init powers up the panel and clears it.
func (p *Panel) Init() error {
	return p.d.Init(OLEDAddress)
}

func (p *Panel) ShowString(col, row int, s string) error {
	return p.d.ShowString(col, row, s)
}

func (p *Panel) ShowNumber(col, row, n int) error {
	return p.d.ShowString(col, row, core.Itoa(n))
}

// ShowLineValues renders both line-sensor readings under LineHeader.
// Readings below 999 are framed by blanks so a shorter value overwrites
// the digits of a longer one.
func (p *Panel) ShowLineValues(left, right core.ADCValue) error {
	if err := p.d.ShowString(0, 0, LineHeader); err != nil {
		return err
	}
	if err := p.showReading(0, left); err != nil {
		return err
	}
	return p.showReading(8, right)
}

func (p *Panel) showReading(col int, v core.ADCValue) error {
	if v >= wideReading {
		return p.ShowNumber(col, 1, int(v))
	}
	if err := p.d.ShowString(col, 1, " "); err != nil {
		return err
	}
	if err := p.ShowNumber(col+1, 1, int(v)); err != nil {
		return err
	}
	return p.d.ShowString(col+4, 1, " ")
}

// ShowDistance renders "<cm>cm" on the first row.
func (p *Panel) ShowDistance(cm int) error {
	if err := p.ShowNumber(0, 0, cm); err != nil {
		return err
	}
	return p.d.ShowString(3, 0, "cm")
}
