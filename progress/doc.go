// Package progress defines primitives for reporting the progress of a
// spawn/join run: how many lines each loop emitted and how many loops are
// running, completed or failed. The tracker travels in the context so the
// worker can update it without a global registry.
package progress
