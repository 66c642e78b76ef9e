// Package mcu manages the USB serial link to the robot firmware.
package mcu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"plumbot/host/monitor"
	"plumbot/host/serial"
	"plumbot/protocol"
)

// settleTime gives a freshly opened board time to reset its UART.
const settleTime = 100 * time.Millisecond

// MCU represents a connection to the robot controller
type MCU struct {
	port      serial.Port
	connected bool
}

// NewMCU creates a new MCU instance (not yet connected)
func NewMCU() *MCU {
	return &MCU{}
}

// Connect connects to the robot via serial port
func (m *MCU) Connect(device string) error {
	return m.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig connects with a custom serial config
func (m *MCU) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	return m.attach(port)
}

// attach adopts an already open port, dropping any half-sent frame.
func (m *MCU) attach(port serial.Port) error {
	time.Sleep(settleTime)
	if err := port.Flush(); err != nil {
		port.Close()
		return fmt.Errorf("flush serial port: %w", err)
	}
	m.port = port
	m.connected = true
	return nil
}

// Close closes the connection
func (m *MCU) Close() error {
	if !m.connected {
		return nil
	}
	m.connected = false
	return m.port.Close()
}

// Telemetry streams decoded messages to fn until ctx is done or the port
// closes.
func (m *MCU) Telemetry(ctx context.Context, fn func(protocol.Message)) (protocol.DecoderStats, error) {
	if !m.connected {
		return protocol.DecoderStats{}, errors.New("not connected to MCU")
	}
	return monitor.Run(ctx, m.port, fn)
}

// Port exposes the underlying stream
func (m *MCU) Port() io.ReadWriter {
	return m.port
}
