// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Execution and run identifiers are opaque strings; callers must not parse
// them.
package idgen
