// Package spawn runs a unit of work on its own goroutine and lets the caller
// join it later. A panic inside the spawned work does not crash the process
// from the goroutine; it is recovered and surfaced by Join as a *PanicError so
// the caller decides whether it is fatal.
package spawn
