package mcu

import (
	"bytes"
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"plumbot/protocol"
)

// bufferPort is an in-memory serial.Port
type bufferPort struct {
	bytes.Buffer
	flushed bool
	closed  bool
}

func (p *bufferPort) Flush() error {
	p.flushed = true
	p.Reset()
	return nil
}

func (p *bufferPort) Close() error {
	p.closed = true
	return nil
}

func TestTelemetryRequiresConnection(t *testing.T) {
	c := qt.New(t)
	_, err := NewMCU().Telemetry(context.Background(), func(protocol.Message) {})
	c.Assert(err, qt.ErrorMatches, "not connected to MCU")
}

func TestAttachFlushesStaleBytes(t *testing.T) {
	c := qt.New(t)
	port := &bufferPort{}
	port.WriteString("half a frame")

	m := NewMCU()
	c.Assert(m.attach(port), qt.IsNil)
	c.Assert(port.flushed, qt.IsTrue)

	c.Assert(protocol.NewEncoder(m.Port()).Send(protocol.RangeMessage(12, 696, true)), qt.IsNil)

	var got []protocol.Message
	stats, err := m.Telemetry(context.Background(), func(msg protocol.Message) { got = append(got, msg) })
	c.Assert(err, qt.IsNil)
	c.Assert(stats.Frames, qt.Equals, 1)
	c.Assert(got[0].Values, qt.DeepEquals, []uint32{12, 696, 1})

	c.Assert(m.Close(), qt.IsNil)
	c.Assert(port.closed, qt.IsTrue)
	c.Assert(m.Close(), qt.IsNil)
}
