package core

// GPIOPin identifies a digital line on the edge connector
type GPIOPin uint32

// PullMode is the input bias applied to a digital line
type PullMode uint8

const (
	PullNone PullMode = iota
	PullUp
	PullDown
)

func (m PullMode) String() string {
	switch m {
	case PullNone:
		return "none"
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	}
	return "unknown"
}

// Pulse is the result of a pulse-width measurement.
// Valid is false when the line never reached the requested level
// before the timeout; Micros is zero in that case.
type Pulse struct {
	Micros uint32
	Valid  bool
}

// GPIODriver is the abstract GPIO interface that robot code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// SetPull configures the bias of a line
	SetPull(pin GPIOPin, mode PullMode) error

	// SetPin drives the line high (true) or low (false).
	// The line is switched to output mode if needed.
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current line state
	GetPin(pin GPIOPin) (bool, error)

	// PulseIn waits up to timeoutUs for the line to reach level, then
	// measures how long it stays there. A pulse that outlasts timeoutUs
	// is reported with Micros capped at timeoutUs.
	PulseIn(pin GPIOPin, level bool, timeoutUs uint32) (Pulse, error)
}

// Global singleton used by robot code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
