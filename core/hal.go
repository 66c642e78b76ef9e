package core

// HAL bundles the drivers a set of robot blocks needs. Target code either
// registers drivers through the Set* functions and calls Registered, or
// builds a HAL value directly.
type HAL struct {
	GPIO    GPIODriver
	ADC     ADCDriver
	PWM     PWMDriver
	Clock   Clock
	Display DisplayDriver
}

// Registered returns the drivers installed with the Set* functions.
// It panics if any of them is missing.
func Registered() HAL {
	return HAL{
		GPIO:    MustGPIO(),
		ADC:     MustADC(),
		PWM:     MustPWM(),
		Clock:   MustClock(),
		Display: MustDisplay(),
	}
}
