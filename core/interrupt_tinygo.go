//go:build tinygo

package core

import "runtime/interrupt"

type ringState = interrupt.State

// lockRing disables interrupts so a handler cannot interleave with a
// ring update, and returns the previous state
func lockRing() ringState {
	return interrupt.Disable()
}

// unlockRing restores the interrupt state
func unlockRing(state ringState) {
	interrupt.Restore(state)
}
