package robot

import (
	"plumbot/core"
	"plumbot/protocol"
)

// Telemetry receives a copy of what the monitors put on screen.
// protocol.Encoder satisfies it.
type Telemetry interface {
	Send(msg protocol.Message) error
}

func lineMessage(left, right core.ADCValue) protocol.Message {
	return protocol.LineMessage(uint32(left), uint32(right))
}

func rangeMessage(r Reading) protocol.Message {
	return protocol.RangeMessage(r.Centimeters, r.Micros, r.Echo)
}

func driveMessage(values [4]core.PWMValue) protocol.Message {
	return protocol.DriveMessage(uint32(values[0]), uint32(values[1]), uint32(values[2]), uint32(values[3]))
}
