package core

import (
	"sync"
	"sync/atomic"
)

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a timing-critical event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Pin       uint8  // Line the event concerns
	Clock     uint32 // Microsecond clock at event (truncated)
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtTrigger = 1 // trigger pulse emitted on Pin
	EvtEcho    = 2 // echo measured: Value1=micros, Value2=timeout
	EvtNoEcho  = 3 // echo wait timed out: Value2=timeout
	EvtDrive   = 4 // motor lines written: Value1=packed direction
	EvtPoll    = 5 // monitoring iteration: Value1=iteration
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Timing capture ring buffer (non-blocking, for post-mortem)
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8        // Next write position
	timingEnabled  bool  = true // Always capture timing events

	// Async debug output, drained by one worker started by InitAsyncDebug
	debugChan    = make(chan string, 16)
	asyncOnce    sync.Once
	asyncRunning atomic.Bool
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, stdout, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
// Ranging is timing sensitive; keep this off unless diagnosing
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine.
// Call this from main() after SetDebugWriter; later calls do nothing.
func InitAsyncDebug() {
	asyncOnce.Do(func() {
		go debugOutputWorker()
		asyncRunning.Store(true)
	})
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if !debugEnabled || !asyncRunning.Load() {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordTiming captures a timing event in the ring buffer
func RecordTiming(eventType, pin uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	state := lockRing()
	defer unlockRing(state)

	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Pin:       pin,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first
func TimingEvents() []TimingEvent {
	state := lockRing()
	defer unlockRing(state)

	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

func eventName(t uint8) string {
	switch t {
	case EvtTrigger:
		return "TRIGGER"
	case EvtEcho:
		return "ECHO"
	case EvtNoEcho:
		return "NO_ECHO!"
	case EvtDrive:
		return "DRIVE"
	case EvtPoll:
		return "POLL"
	}
	return "UNKNOWN"
}

// DumpTimingRing outputs the timing ring buffer through the debug writer.
// It writes even when debug output is disabled.
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		debugPrintln("[TIMING] " + eventName(evt.EventType) +
			" pin=" + itoa(int(evt.Pin)) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	state := lockRing()
	defer unlockRing(state)

	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
