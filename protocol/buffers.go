package protocol

// InputBuffer is the receive side seen by the frame parser
type InputBuffer interface {
	Data() []byte
	Available() int
	Pop(n int)
}

// OutputBuffer receives encoded payload bytes
type OutputBuffer interface {
	Output(data []byte)
}

// ScratchOutput collects one outgoing frame in a fixed array.
// Bytes past MessageMax are dropped.
type ScratchOutput struct {
	buf [MessageMax]byte
	n   int
}

func (s *ScratchOutput) Output(data []byte) {
	s.n += copy(s.buf[s.n:], data)
}

// CurPosition is the number of bytes written so far
func (s *ScratchOutput) CurPosition() int {
	return s.n
}

// Update patches an already written byte, e.g. the frame length
func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.n {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.n]
}

func (s *ScratchOutput) Reset() {
	s.n = 0
}

// FifoBuffer is a fixed-capacity byte ring used to reassemble frames
// from a serial stream
type FifoBuffer struct {
	buf  []byte
	head int // oldest byte
	n    int // bytes held
}

// NewFifoBuffer returns a ring holding up to capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the count
func (f *FifoBuffer) Write(data []byte) int {
	n := min(len(data), f.Free())
	tail := (f.head + f.n) % len(f.buf)
	c := copy(f.buf[tail:], data[:n])
	copy(f.buf, data[c:n])
	f.n += n
	return n
}

func (f *FifoBuffer) Available() int {
	return f.n
}

// Free is the room left for Write
func (f *FifoBuffer) Free() int {
	return len(f.buf) - f.n
}

// Data returns the held bytes in order. A wrapped ring is copied out.
func (f *FifoBuffer) Data() []byte {
	if f.head+f.n <= len(f.buf) {
		return f.buf[f.head : f.head+f.n]
	}
	out := make([]byte, f.n)
	c := copy(out, f.buf[f.head:])
	copy(out[c:], f.buf)
	return out
}

// Pop discards up to n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	n = min(n, f.n)
	f.n -= n
	if f.n == 0 {
		f.head = 0
		return
	}
	f.head = (f.head + n) % len(f.buf)
}
