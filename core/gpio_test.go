package core

import (
	"testing"
)

// MockGPIODriver is a test implementation of GPIODriver
type MockGPIODriver struct {
	pins  map[GPIOPin]bool
	pulls map[GPIOPin]PullMode
	pulse Pulse
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		pins:  make(map[GPIOPin]bool),
		pulls: make(map[GPIOPin]PullMode),
	}
}

func (m *MockGPIODriver) SetPull(pin GPIOPin, mode PullMode) error {
	m.pulls[pin] = mode
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	m.pins[pin] = value
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

func (m *MockGPIODriver) PulseIn(pin GPIOPin, level bool, timeoutUs uint32) (Pulse, error) {
	return m.pulse, nil
}

// resetDrivers clears all registered drivers
func resetDrivers() {
	gpioDriver = nil
	adcDriver = nil
	pwmDriver = nil
	clock = nil
	displayDriver = nil
}

func TestGPIODriverBasic(t *testing.T) {
	resetDrivers()
	mockDriver := NewMockGPIODriver()
	SetGPIODriver(mockDriver)

	pin := GPIOPin(12)
	if err := MustGPIO().SetPull(pin, PullNone); err != nil {
		t.Fatalf("SetPull failed: %v", err)
	}
	if mockDriver.pulls[pin] != PullNone {
		t.Errorf("Expected pull none, got %v", mockDriver.pulls[pin])
	}

	// Test set high
	if err := MustGPIO().SetPin(pin, true); err != nil {
		t.Fatalf("SetPin(true) failed: %v", err)
	}

	state, err := MustGPIO().GetPin(pin)
	if err != nil {
		t.Fatalf("GetPin failed: %v", err)
	}
	if !state {
		t.Errorf("Expected pin to be high, got low")
	}

	// Test set low
	if err := MustGPIO().SetPin(pin, false); err != nil {
		t.Fatalf("SetPin(false) failed: %v", err)
	}
	state, _ = MustGPIO().GetPin(pin)
	if state {
		t.Errorf("Expected pin to be low, got high")
	}
}

func TestMustGPIOPanicsWithoutDriver(t *testing.T) {
	resetDrivers()
	defer func() {
		if recover() == nil {
			t.Error("MustGPIO did not panic")
		}
	}()
	MustGPIO()
}

func TestPullModeString(t *testing.T) {
	cases := map[PullMode]string{
		PullNone:    "none",
		PullUp:      "up",
		PullDown:    "down",
		PullMode(9): "unknown",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("PullMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
