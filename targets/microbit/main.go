//go:build microbit_v2

package main

import (
	"context"
	"machine"
	"time"

	"plumbot/core"
	"plumbot/protocol"
	"plumbot/robot"
)

// Mode is chosen by button A held during reset. Button B shares P11
// with the echo line and cannot be read.
type Mode uint8

const (
	ModeLine  Mode = iota // no button
	ModeSonar             // A
)

func readMode() Mode {
	machine.BUTTONA.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if machine.BUTTONA.Get() {
		return ModeLine
	}
	return ModeSonar
}

func main() {
	initDebug(false)

	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SCL:       machine.P19,
		SDA:       machine.P20,
	})

	clock := core.NewSystemClock()
	core.SetClock(clock)
	core.SetGPIODriver(NewMicrobitGPIODriver(clock))
	core.SetADCDriver(NewMicrobitADCDriver())
	core.SetPWMDriver(NewMicrobitPWMDriver())
	core.SetDisplayDriver(NewOLEDDisplay(machine.I2C0))

	hal := core.Registered()
	pins := robot.DefaultPins()
	telemetry := protocol.NewEncoder(machine.Serial)
	poll := robot.PollConfig{Every: robot.DefaultPollEvery}

	var err error
	switch mode := readMode(); mode {
	case ModeSonar:
		core.DebugPrintln("mode: sonar")
		m := &robot.SonarMonitor{
			Ranger:    robot.NewRanger(hal.GPIO, hal.Clock, pins.Trigger, pins.Echo),
			Panel:     robot.NewPanel(hal.Display),
			Telemetry: telemetry,
		}
		err = m.Run(context.Background(), poll)

	default:
		core.DebugPrintln("mode: line")
		panel := robot.NewPanel(hal.Display)
		if err = panel.Init(); err == nil {
			m := &robot.LineMonitor{
				Sensors:   robot.NewLineSensors(hal.ADC, pins.LeftLine, pins.RightLine),
				Panel:     panel,
				Telemetry: telemetry,
			}
			err = m.Run(context.Background(), poll)
		}
	}

	// only reached on a driver error
	if err != nil {
		core.DebugPrintln("stopped: " + err.Error())
	}
	core.DumpTimingRing()
	for {
		time.Sleep(time.Second)
	}
}
