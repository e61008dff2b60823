package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// SleepFunc pauses the calling goroutine. Override in tests to skip delays.
var SleepFunc = time.Sleep

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Sleep is a thin wrapper around SleepFunc; non-positive durations return
// immediately.
func Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	SleepFunc(d)
}
