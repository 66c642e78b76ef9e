package core

// PWMPin identifies a line capable of analog (PWM) output
type PWMPin uint32

// PWMValue is the duty cycle value (0 to PWMMax)
type PWMValue uint32

// PWMMax is the full-scale duty value used by robot code
const PWMMax = 1023

// PWMDriver is the abstract PWM interface that robot code uses.
// Platform-specific implementations handle actual hardware control.
type PWMDriver interface {
	// SetDutyCycle sets the PWM duty cycle for a pin
	// value: 0 (fully off) to PWMMax (fully on). The pin is configured
	// for PWM output on first use.
	SetDutyCycle(pin PWMPin, value PWMValue) error
}

// Global singleton used by robot code.
var pwmDriver PWMDriver

// SetPWMDriver is called by target-specific code to register its driver.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the configured driver or panics if missing.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}

// ScalePWM maps a 0..PWMMax duty onto a hardware counter top value.
func ScalePWM(value PWMValue, top uint32) uint32 {
	if value >= PWMMax {
		return top
	}
	return uint32((uint64(value) * uint64(top)) / PWMMax)
}
