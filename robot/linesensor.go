package robot

import (
	"fmt"

	"plumbot/core"
)

// BlackThreshold is the reflectance reading at and above which the surface
// under a line sensor counts as black.
const BlackThreshold = 800

// IsBlack classifies a raw line-sensor reading.
func IsBlack(v int) bool {
	return v >= BlackThreshold
}

// IsWhite is the complement of IsBlack.
func IsWhite(v int) bool {
	return !IsBlack(v)
}

// LineSensors reads the two infrared reflectance sensors.
type LineSensors struct {
	adc   core.ADCDriver
	left  core.ADCPin
	right core.ADCPin
}

func NewLineSensors(adc core.ADCDriver, left, right core.ADCPin) *LineSensors {
	return &LineSensors{adc: adc, left: left, right: right}
}

// Left returns the raw left sensor value.
func (s *LineSensors) Left() (core.ADCValue, error) {
	return s.read(s.left)
}

// Right returns the raw right sensor value.
func (s *LineSensors) Right() (core.ADCValue, error) {
	return s.read(s.right)
}

// Both samples left then right.
func (s *LineSensors) Both() (left, right core.ADCValue, err error) {
	if left, err = s.Left(); err != nil {
		return 0, 0, err
	}
	if right, err = s.Right(); err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

func (s *LineSensors) IsLeftBlack() (bool, error)  { return s.classify(s.left, IsBlack) }
func (s *LineSensors) IsRightBlack() (bool, error) { return s.classify(s.right, IsBlack) }
func (s *LineSensors) IsLeftWhite() (bool, error)  { return s.classify(s.left, IsWhite) }
func (s *LineSensors) IsRightWhite() (bool, error) { return s.classify(s.right, IsWhite) }

func (s *LineSensors) classify(pin core.ADCPin, pred func(int) bool) (bool, error) {
	v, err := s.read(pin)
	if err != nil {
		return false, err
	}
	return pred(int(v)), nil
}

func (s *LineSensors) read(pin core.ADCPin) (core.ADCValue, error) {
	v, err := s.adc.ReadRaw(pin)
	if err != nil {
		return 0, fmt.Errorf("line sensor on analog %d: %w", pin, err)
	}
	return v, nil
}
