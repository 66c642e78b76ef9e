// Package protocol implements the telemetry framing used to mirror the
// robot's monitor screens over a serial line
package protocol

import (
	"errors"
	"fmt"
)

// Frame constants
const (
	MessageHeaderSize  = 2 // length, sequence
	MessageTrailerSize = 3 // crc hi, crc lo, sync
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence mask
	MessageSeqMask = 0x0F

	// MessageMax is the scratch buffer size used while encoding
	MessageMax = 512
)

// MsgID identifies a telemetry message
type MsgID uint8

const (
	MsgLine  MsgID = 1 // left, right
	MsgRange MsgID = 2 // centimeters, micros, echo
	MsgDrive MsgID = 3 // left fwd, left rev, right fwd, right rev
)

var fieldCounts = map[MsgID]int{
	MsgLine:  2,
	MsgRange: 3,
	MsgDrive: 4,
}

func (id MsgID) String() string {
	switch id {
	case MsgLine:
		return "line"
	case MsgRange:
		return "range"
	case MsgDrive:
		return "drive"
	}
	return fmt.Sprintf("msg(%d)", uint8(id))
}

var (
	ErrUnknownMessage = errors.New("unknown message id")
	ErrFieldCount     = errors.New("wrong field count")
	ErrFrameTooLong   = errors.New("frame exceeds maximum length")
)

// Message is one decoded telemetry record
type Message struct {
	ID     MsgID
	Values []uint32
	Seq    uint8 // sequence of the carrying frame, set by Decoder
}

// LineMessage carries both raw line-sensor readings
func LineMessage(left, right uint32) Message {
	return Message{ID: MsgLine, Values: []uint32{left, right}}
}

// RangeMessage carries one ultrasonic reading
func RangeMessage(cm, micros uint32, echo bool) Message {
	var e uint32
	if echo {
		e = 1
	}
	return Message{ID: MsgRange, Values: []uint32{cm, micros, e}}
}

// DriveMessage carries the four motor line duties
func DriveMessage(lf, lr, rf, rr uint32) Message {
	return Message{ID: MsgDrive, Values: []uint32{lf, lr, rf, rr}}
}

// Encode appends the message payload: VLQ id followed by VLQ fields
func (m Message) Encode(output OutputBuffer) error {
	want, ok := fieldCounts[m.ID]
	if !ok {
		return ErrUnknownMessage
	}
	if len(m.Values) != want {
		return fmt.Errorf("%s has %d fields, want %d: %w", m.ID, len(m.Values), want, ErrFieldCount)
	}
	EncodeVLQUint(output, uint32(m.ID))
	for _, v := range m.Values {
		EncodeVLQUint(output, v)
	}
	return nil
}

// DecodeMessage parses one message from the front of data
func DecodeMessage(data *[]byte) (Message, error) {
	id, err := DecodeVLQUint(data)
	if err != nil {
		return Message{}, err
	}
	n, ok := fieldCounts[MsgID(id)]
	if !ok {
		return Message{}, fmt.Errorf("id %d: %w", id, ErrUnknownMessage)
	}
	msg := Message{ID: MsgID(id), Values: make([]uint32, n)}
	for i := range msg.Values {
		if msg.Values[i], err = DecodeVLQUint(data); err != nil {
			return Message{}, fmt.Errorf("%s field %d: %w", msg.ID, i, err)
		}
	}
	return msg, nil
}
