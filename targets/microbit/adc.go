//go:build microbit_v2

package main

import (
	"machine"

	"plumbot/core"
)

// machine.ADC.Get returns readings scaled to 16 bits
const adcBits = 16

// MicrobitADCDriver implements core.ADCDriver using TinyGo's machine.ADC.
type MicrobitADCDriver struct {
	channels map[core.ADCPin]*machine.ADC
}

func NewMicrobitADCDriver() *MicrobitADCDriver {
	machine.InitADC()
	return &MicrobitADCDriver{channels: make(map[core.ADCPin]*machine.ADC)}
}

// ReadRaw configures the line as analog input on first use
func (d *MicrobitADCDriver) ReadRaw(pin core.ADCPin) (core.ADCValue, error) {
	adc, ok := d.channels[pin]
	if !ok {
		p, err := edgePin(uint32(pin))
		if err != nil {
			return 0, err
		}
		adc = &machine.ADC{Pin: p}
		if err := adc.Configure(machine.ADCConfig{}); err != nil {
			return 0, err
		}
		d.channels[pin] = adc
	}
	return core.ScaleADC(uint32(adc.Get()), adcBits), nil
}
