// Package monitor decodes the telemetry the robot mirrors from its panel
// and renders it as text.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"plumbot/core"
	"plumbot/protocol"
	"plumbot/robot"
)

const readChunk = 64

// Run feeds bytes from r through a protocol decoder and hands every
// message to fn. It returns the decoder statistics when r reaches EOF or
// ctx is done. Reads that time out with no data are retried.
func Run(ctx context.Context, r io.Reader, fn func(protocol.Message)) (protocol.DecoderStats, error) {
	dec := protocol.NewDecoder()
	buf := make([]byte, readChunk)

	for {
		if err := ctx.Err(); err != nil {
			return dec.Stats(), err
		}

		n, err := r.Read(buf)
		if n > 0 {
			for _, msg := range dec.Feed(buf[:n]) {
				fn(msg)
			}
		}
		if errors.Is(err, io.EOF) {
			return dec.Stats(), nil
		}
		if err != nil {
			return dec.Stats(), fmt.Errorf("read telemetry: %w", err)
		}
	}
}

// Format renders one message as a single line.
func Format(msg protocol.Message) string {
	v := msg.Values
	switch msg.ID {
	case protocol.MsgLine:
		return fmt.Sprintf("line   L=%-4d %-5s R=%-4d %s", v[0], shade(v[0]), v[1], shade(v[1]))
	case protocol.MsgRange:
		if v[2] == 0 {
			return "range  no echo"
		}
		return fmt.Sprintf("range  %d cm (%d us)", v[0], v[1])
	case protocol.MsgDrive:
		return fmt.Sprintf("drive  %-8s %v", direction(v), v)
	}
	return fmt.Sprintf("%s %v", msg.ID, v)
}

func shade(v uint32) string {
	if robot.IsBlack(int(v)) {
		return "black"
	}
	return "white"
}

// direction names the motor pattern, "mixed" when it matches none
func direction(v []uint32) string {
	for d := robot.Stopped; ; d++ {
		want, ok := robot.Duties(d)
		if !ok {
			return "mixed"
		}
		if sameDuties(want, v) {
			return d.String()
		}
	}
}

func sameDuties(want [4]core.PWMValue, got []uint32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if uint32(want[i]) != got[i] {
			return false
		}
	}
	return true
}
