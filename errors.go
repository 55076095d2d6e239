package compkey

import "fmt"

// MisuseError indicates the caller handed the package something it cannot
// work with: an unsupported component type, a forged handle, or a
// non-comparable container key. It is returned, never retried, and never
// recoverable by the package itself.
type MisuseError struct {
	Op     string
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// InternalInvariantError indicates corrupted interning state and a bug in
// this package. It is used as a panic value, not returned.
type InternalInvariantError struct {
	Reason string
}

func (e *InternalInvariantError) Error() string {
	return "internal invariant violated: " + e.Reason
}
