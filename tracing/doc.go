// Package tracing is a thin wrapper around OpenTelemetry so that the rest of
// the code base starts and ends spans without importing the upstream
// packages. Until Init succeeds spans are no-ops.
package tracing
