//go:build !tinygo

package core

import "sync"

// ringState is returned by lockRing and handed back to unlockRing
type ringState struct{}

var ringMu sync.Mutex

// lockRing serializes timing ring access between goroutines on regular Go
func lockRing() ringState {
	ringMu.Lock()
	return ringState{}
}

func unlockRing(ringState) {
	ringMu.Unlock()
}
