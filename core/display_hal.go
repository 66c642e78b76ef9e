package core

// Character grid of the 128x64 OLED with an 8x8 font.
const (
	DisplayColumns = 16
	DisplayRows    = 8
)

// DisplayDriver is the abstract character display interface that robot code uses.
type DisplayDriver interface {
	// Init powers up the panel at the given 7-bit I2C address and clears it.
	Init(addr uint8) error

	// Clear blanks the whole panel.
	Clear() error

	// ShowString writes s starting at the given character cell.
	// Text running past the last column is clipped.
	ShowString(col, row int, s string) error
}

// Global singleton used by robot code.
var displayDriver DisplayDriver

// SetDisplayDriver is called by target-specific code to register its driver.
func SetDisplayDriver(d DisplayDriver) {
	displayDriver = d
}

// MustDisplay returns the configured driver or panics if missing.
func MustDisplay() DisplayDriver {
	if displayDriver == nil {
		panic("display driver not configured")
	}
	return displayDriver
}
