//go:build microbit_v2

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"plumbot/core"
)

const (
	oledWidth  = 128
	oledHeight = 64
	cellSize   = 8

	// baseline offset of the 8pt font inside a cell
	glyphBaseline = 6
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// OLEDDisplay implements core.DisplayDriver on an SSD1306 panel, one
// character per 8x8 cell.
type OLEDDisplay struct {
	bus *machine.I2C

	// bound to the driver instance created in Init
	setPixel    func(x, y int16, c color.RGBA)
	flush       func() error
	clearBuffer func()
}

func NewOLEDDisplay(bus *machine.I2C) *OLEDDisplay {
	return &OLEDDisplay{bus: bus}
}

func (d *OLEDDisplay) Init(addr uint8) error {
	dev := ssd1306.NewI2C(d.bus)
	dev.Configure(ssd1306.Config{
		Width:    oledWidth,
		Height:   oledHeight,
		Address:  uint16(addr),
		VccState: ssd1306.SWITCHCAPVCC,
	})
	d.setPixel = dev.SetPixel
	d.flush = dev.Display
	d.clearBuffer = dev.ClearBuffer
	return d.Clear()
}

func (d *OLEDDisplay) Clear() error {
	if d.flush == nil {
		return errNotInitialized
	}
	d.clearBuffer()
	return d.flush()
}

// ShowString draws s cell by cell and pushes the frame buffer
func (d *OLEDDisplay) ShowString(col, row int, s string) error {
	if d.flush == nil {
		return errNotInitialized
	}
	if row < 0 || row >= core.DisplayRows {
		return nil
	}
	for i := 0; i < len(s); i++ {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= core.DisplayColumns {
			break
		}
		x, y := int16(c*cellSize), int16(row*cellSize)
		d.fillCell(x, y, black)
		tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, x, y+glyphBaseline, s[i:i+1], white)
	}
	return d.flush()
}

func (d *OLEDDisplay) fillCell(x, y int16, c color.RGBA) {
	for dy := int16(0); dy < cellSize; dy++ {
		for dx := int16(0); dx < cellSize; dx++ {
			d.setPixel(x+dx, y+dy, c)
		}
	}
}

// Size, SetPixel and Display make OLEDDisplay a tinyfont target

func (d *OLEDDisplay) Size() (int16, int16) {
	return oledWidth, oledHeight
}

func (d *OLEDDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.setPixel(x, y, c)
}

func (d *OLEDDisplay) Display() error {
	return d.flush()
}
