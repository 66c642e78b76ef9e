package robot

import (
	"errors"
	"fmt"

	"plumbot/core"
)

// ErrPinConflict is returned when two functions of the same pin class share a line.
var ErrPinConflict = errors.New("pin assigned twice")

// Pins binds robot functions to edge-connector lines.
type Pins struct {
	LeftLine     core.ADCPin  `yaml:"left_line"`
	RightLine    core.ADCPin  `yaml:"right_line"`
	Trigger      core.GPIOPin `yaml:"trigger"`
	Echo         core.GPIOPin `yaml:"echo"`
	LeftForward  core.PWMPin  `yaml:"left_forward"`
	LeftReverse  core.PWMPin  `yaml:"left_reverse"`
	RightForward core.PWMPin  `yaml:"right_forward"`
	RightReverse core.PWMPin  `yaml:"right_reverse"`
}

// DefaultPins returns the wiring of the stock robot board.
func DefaultPins() Pins {
	return Pins{
		LeftLine:     3,
		RightLine:    4,
		Trigger:      12,
		Echo:         11,
		LeftForward:  13,
		LeftReverse:  14,
		RightForward: 15,
		RightReverse: 16,
	}
}

// Validate rejects wirings where one line serves two functions.
func (p Pins) Validate() error {
	if p.LeftLine == p.RightLine {
		return fmt.Errorf("line sensors on analog %d: %w", p.LeftLine, ErrPinConflict)
	}
	if p.Trigger == p.Echo {
		return fmt.Errorf("trigger and echo on digital %d: %w", p.Trigger, ErrPinConflict)
	}
	motors := p.motorPins()
	for i := range motors {
		for j := i + 1; j < len(motors); j++ {
			if motors[i] == motors[j] {
				return fmt.Errorf("motor lines on analog %d: %w", motors[i], ErrPinConflict)
			}
		}
	}
	return nil
}

// motorPins returns the drive lines in write order.
func (p Pins) motorPins() [4]core.PWMPin {
	return [4]core.PWMPin{p.LeftForward, p.LeftReverse, p.RightForward, p.RightReverse}
}
