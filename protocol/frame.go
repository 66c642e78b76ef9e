package protocol

import (
	"bytes"
	"io"
	"sync"
)

// Encoder frames telemetry messages onto a writer
type Encoder struct {
	mu     sync.Mutex
	w      io.Writer
	seq    uint8
	output ScratchOutput
}

// NewEncoder returns an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Send writes msg as one frame: len, seq, payload, crc16, sync
func (e *Encoder) Send(msg Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.output.Reset()
	seq := MessageDest | (e.seq & MessageSeqMask)
	e.output.Output([]byte{0, seq})
	if err := msg.Encode(&e.output); err != nil {
		return err
	}

	length := e.output.CurPosition() + MessageTrailerSize
	if length > MessageLengthMax {
		return ErrFrameTooLong
	}
	e.output.Update(MessagePositionLen, uint8(length))

	crc := CRC16(e.output.Result())
	e.output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	if _, err := e.w.Write(e.output.Result()); err != nil {
		return err
	}
	e.seq = (e.seq + 1) & MessageSeqMask
	return nil
}

// DecoderStats counts what a Decoder has seen
type DecoderStats struct {
	Frames  int // frames with a valid CRC
	Dropped int // resynchronisations and undecodable payloads
	SeqGaps int // frames whose sequence did not follow the previous one
}

// Decoder reassembles frames from a byte stream
type Decoder struct {
	fifo    *FifoBuffer
	synced  bool
	haveSeq bool
	nextSeq uint8
	stats   DecoderStats
}

// NewDecoder returns a decoder that starts synchronized
func NewDecoder() *Decoder {
	return &Decoder{
		fifo:   NewFifoBuffer(4 * MessageLengthMax),
		synced: true,
	}
}

// Stats returns the running counters
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// Feed consumes raw bytes and returns every complete message found
func (d *Decoder) Feed(data []byte) []Message {
	var msgs []Message
	for len(data) > 0 {
		if d.fifo.Free() == 0 {
			// full of bytes that never form a frame
			d.fifo.Pop(1)
			d.desync()
		}
		n := d.fifo.Write(data)
		data = data[n:]
		msgs = d.parse(d.fifo, msgs)
	}
	return msgs
}

func (d *Decoder) desync() {
	if d.synced {
		d.stats.Dropped++
	}
	d.synced = false
}

// parse mirrors the receive loop of a serial transport: skip to a sync
// byte when lost, otherwise validate length, destination, sync and CRC
func (d *Decoder) parse(in InputBuffer, msgs []Message) []Message {
	data := in.Data()
	start := len(data)

	for len(data) > 0 {
		if !d.synced {
			i := bytes.IndexByte(data, MessageValueSync)
			if i < 0 {
				data = nil
				break
			}
			data = data[i+1:]
			d.synced = true
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		// Wait for full message
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]
		d.stats.Frames++

		if d.haveSeq && seq != d.nextSeq {
			d.stats.SeqGaps++
		}
		d.haveSeq = true
		d.nextSeq = MessageDest | ((seq + 1) & MessageSeqMask)

		for len(payload) > 0 {
			msg, err := DecodeMessage(&payload)
			if err != nil {
				d.stats.Dropped++
				break
			}
			msg.Seq = seq & MessageSeqMask
			msgs = append(msgs, msg)
		}
	}

	in.Pop(start - len(data))
	return msgs
}
