package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory pipes (for testing and the simulator loopback)
type Port interface {
	io.ReadWriteCloser

	// Flush discards data received but not yet read
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string `yaml:"device"`

	// Baud rate of the micro:bit USB UART bridge
	Baud int `yaml:"baud"`

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int `yaml:"read_timeout_ms"`
}

// DefaultBaud is the rate the robot firmware configures on its UART
const DefaultBaud = 115200

// DefaultConfig returns the configuration matching the robot firmware
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100, // 100ms read timeout
	}
}
