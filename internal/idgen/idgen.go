package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier as string.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier.
func New() string { return NewFunc() }

// WithPrefix returns a new identifier scoped under prefix, e.g. "spawned/<uuid>".
func WithPrefix(prefix string) string {
	if prefix == "" {
		return New()
	}
	return prefix + "/" + New()
}
