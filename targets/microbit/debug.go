//go:build microbit_v2

package main

import (
	"errors"

	"plumbot/core"
)

var errNotInitialized = errors.New("display not initialized")

// initDebug routes core debug output to the USB UART console
func initDebug(enabled bool) {
	core.SetDebugWriter(func(s string) {
		println(s)
	})
	core.SetDebugEnabled(enabled)
	core.InitAsyncDebug()
}
