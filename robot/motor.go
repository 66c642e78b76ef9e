package robot

import (
	"errors"
	"fmt"

	"plumbot/core"
)

// FullScale is the duty written to an active motor line.
const FullScale = core.PWMMax

// Direction selects which of each motor's two lines is driven.
type Direction uint8

const (
	Stopped Direction = iota
	Forward
	Backward
	SpinLeft
	SpinRight
)

func (d Direction) String() string {
	switch d {
	case Stopped:
		return "stop"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case SpinLeft:
		return "left"
	case SpinRight:
		return "right"
	}
	return "unknown"
}

// duties per direction in motor-line order:
// left forward, left reverse, right forward, right reverse.
var duties = [...][4]core.PWMValue{
	Stopped:   {0, 0, 0, 0},
	Forward:   {FullScale, 0, FullScale, 0},
	Backward:  {0, FullScale, 0, FullScale},
	SpinLeft:  {0, FullScale, FullScale, 0},
	SpinRight: {FullScale, 0, 0, FullScale},
}

// Duties returns the four line values a direction writes.
func Duties(d Direction) ([4]core.PWMValue, bool) {
	if int(d) >= len(duties) {
		return [4]core.PWMValue{}, false
	}
	return duties[d], true
}

// Drive is open-loop control of the two DC motors. It keeps no state:
// every call writes all four lines.
type Drive struct {
	pwm   core.PWMDriver
	lines [4]core.PWMPin

	// Telemetry, when set, receives the written duties after each call.
	Telemetry Telemetry
}

func NewDrive(pwm core.PWMDriver, pins Pins) *Drive {
	return &Drive{pwm: pwm, lines: pins.motorPins()}
}

func (d *Drive) MoveForward() error  { return d.Apply(Forward) }
func (d *Drive) MoveBackward() error { return d.Apply(Backward) }
func (d *Drive) TurnLeft() error     { return d.Apply(SpinLeft) }
func (d *Drive) TurnRight() error    { return d.Apply(SpinRight) }
func (d *Drive) Stop() error         { return d.Apply(Stopped) }

// Apply writes the duties of dir. All four lines are attempted even if one
// write fails, so a Stop reaches every line the hardware accepts.
func (d *Drive) Apply(dir Direction) error {
	values, ok := Duties(dir)
	if !ok {
		return fmt.Errorf("direction %d: %w", dir, errUnknownDirection)
	}

	var errs []error
	for i, pin := range d.lines {
		if err := d.pwm.SetDutyCycle(pin, values[i]); err != nil {
			errs = append(errs, fmt.Errorf("motor line %d: %w", pin, err))
		}
	}
	core.RecordTiming(core.EvtDrive, uint8(dir), 0, uint32(dir), uint32(len(errs)))

	if err := errors.Join(errs...); err != nil {
		return err
	}
	if d.Telemetry != nil {
		return d.Telemetry.Send(driveMessage(values))
	}
	return nil
}

var errUnknownDirection = errors.New("unknown direction")
