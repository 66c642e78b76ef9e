package core

// ADCPin identifies an analog input line.
type ADCPin uint32

// ADCValue is the raw reading as seen by the rest of the firmware.
// Convention here: 10-bit value (0..ADCMax), whatever the hardware resolution.
type ADCValue uint16

// ADCMax is the full-scale analog reading.
const ADCMax = 1023

// ADCDriver is the abstract ADC interface that robot code uses.
type ADCDriver interface {
	// ReadRaw performs a one-shot sample from the given line.
	// Drivers backed by wider converters scale down to 0..ADCMax.
	ReadRaw(pin ADCPin) (ADCValue, error)
}

// Global singleton used by robot code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}

// ScaleADC reduces a reading of the given bit width to 0..ADCMax.
func ScaleADC(raw uint32, bits uint8) ADCValue {
	switch {
	case bits > 10:
		raw >>= bits - 10
	case bits < 10:
		raw <<= 10 - bits
	}
	if raw > ADCMax {
		raw = ADCMax
	}
	return ADCValue(raw)
}
