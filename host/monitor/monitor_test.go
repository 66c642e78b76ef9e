package monitor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"plumbot/protocol"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		msg  protocol.Message
		want string
	}{
		{protocol.LineMessage(830, 64), "line   L=830  black R=64   white"},
		{protocol.RangeMessage(37, 2146, true), "range  37 cm (2146 us)"},
		{protocol.RangeMessage(0, 0, false), "range  no echo"},
		{protocol.DriveMessage(0, 1023, 1023, 0), "drive  left     [0 1023 1023 0]"},
		{protocol.DriveMessage(0, 0, 0, 0), "drive  stop     [0 0 0 0]"},
		{protocol.DriveMessage(1, 2, 3, 4), "drive  mixed    [1 2 3 4]"},
	}
	for _, tt := range tests {
		c := qt.New(t)
		c.Assert(Format(tt.msg), qt.Equals, tt.want)
	}
}

func TestRunDecodesUntilEOF(t *testing.T) {
	c := qt.New(t)
	var wire bytes.Buffer
	enc := protocol.NewEncoder(&wire)
	for i := uint32(0); i < 20; i++ {
		c.Assert(enc.Send(protocol.LineMessage(i, 1000-i)), qt.IsNil)
	}

	var got []protocol.Message
	stats, err := Run(context.Background(), &wire, func(m protocol.Message) {
		got = append(got, m)
	})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 20)
	c.Assert(got[19].Values, qt.DeepEquals, []uint32{19, 981})
	c.Assert(stats, qt.Equals, protocol.DecoderStats{Frames: 20})
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestRunReadError(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("unplugged")
	_, err := Run(context.Background(), failingReader{boom}, func(protocol.Message) {})
	c.Assert(err, qt.ErrorIs, boom)
}

// idleReader behaves like a serial port whose read timeout expires.
type idleReader struct{ cancel context.CancelFunc }

func (r idleReader) Read([]byte) (int, error) {
	r.cancel()
	return 0, nil
}

func TestRunStopsOnCancel(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	_, err := Run(ctx, idleReader{cancel}, func(protocol.Message) {})
	c.Assert(err, qt.ErrorIs, context.Canceled)
}
