// Package config loads the host tool configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"plumbot/host/rpi"
	"plumbot/host/serial"
	"plumbot/robot"
)

// Config is the complete host configuration. Fields absent from the file
// keep their defaults.
type Config struct {
	Serial        serial.Config    `yaml:"serial"`
	Pins          robot.Pins       `yaml:"pins"`
	Poll          robot.PollConfig `yaml:"poll"`
	MaxDistanceCm uint32           `yaml:"max_distance_cm"`
	Rpi           rpi.Config       `yaml:"rpi"`
}

// DefaultDevice is the serial device of a micro:bit on Linux.
const DefaultDevice = "/dev/ttyACM0"

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Serial:        *serial.DefaultConfig(DefaultDevice),
		Pins:          robot.DefaultPins(),
		Poll:          robot.PollConfig{Every: robot.DefaultPollEvery},
		MaxDistanceCm: robot.MaxDistanceCm,
		Rpi:           rpi.DefaultConfig(),
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills values that were explicitly zeroed
func (c *Config) applyDefaults() {
	if c.Serial.Baud == 0 {
		c.Serial.Baud = serial.DefaultBaud
	}
	if c.Poll.Every <= 0 {
		c.Poll.Every = robot.DefaultPollEvery
	}
	if c.MaxDistanceCm == 0 {
		c.MaxDistanceCm = robot.MaxDistanceCm
	}
	if c.Rpi.PWMHz == 0 {
		c.Rpi.PWMHz = rpi.DefaultConfig().PWMHz
	}
}

// Validate checks the pin wiring and value ranges.
func (c *Config) Validate() error {
	if err := c.Pins.Validate(); err != nil {
		return fmt.Errorf("pins: %w", err)
	}
	if c.MaxDistanceCm > robot.MaxRangeCm {
		return fmt.Errorf("max_distance_cm %d exceeds %d", c.MaxDistanceCm, robot.MaxRangeCm)
	}
	if c.Poll.Limit < 0 {
		return fmt.Errorf("poll.limit %d is negative", c.Poll.Limit)
	}
	if c.Serial.Baud < 0 {
		return fmt.Errorf("serial.baud %d is negative", c.Serial.Baud)
	}
	if c.Serial.ReadTimeout < 0 {
		return fmt.Errorf("serial.read_timeout_ms %d is negative", c.Serial.ReadTimeout)
	}
	if c.Rpi.LeftChannel == c.Rpi.RightChannel {
		return fmt.Errorf("rpi: line sensors on ADC channel %d: %w", c.Rpi.LeftChannel, robot.ErrPinConflict)
	}
	return nil
}
