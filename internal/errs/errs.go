// Package errs defines the error taxonomy shared by every ordermaint
// backend: comparison never errors (it reports Incomparable instead),
// but Insert can fail fatally, and misuse of a handle is a programmer
// error rather than something a caller should branch on.
package errs

import "fmt"

// SaturationError reports that a universe can no longer admit an insert
// without exceeding its label width. Once raised, the universe that
// raised it should be treated as poisoned: further inserts targeting
// priorities near the exhausted region are likely to fail too.
type SaturationError struct {
	Backend   string
	Universe  string
	Occupancy int
}

func (e *SaturationError) Error() string {
	return fmt.Sprintf("ordermaint: %s universe %s saturated at occupancy %d", e.Backend, e.Universe, e.Occupancy)
}

// NewSaturationError constructs a SaturationError for the given backend
// and universe, recording the occupancy at the time of failure.
func NewSaturationError(backend, universe string, occupancy int) *SaturationError {
	return &SaturationError{Backend: backend, Universe: universe, Occupancy: occupancy}
}

// ProgrammerError indicates a contract violation: a stale or
// out-of-range key, a double Drop, or use of a priority after it was
// dropped. Callers should not attempt to recover from these; they
// indicate a bug at the call site, not a runtime condition.
type ProgrammerError struct {
	Msg string
}

func (e *ProgrammerError) Error() string { return "ordermaint: " + e.Msg }

// PanicInvalidKey panics with a ProgrammerError describing a stale or
// out-of-range slab key. Arena.Get calls this rather than returning an
// error, matching the "panics if key invalid" contract of the arena
// this package's callers are built on.
func PanicInvalidKey() {
	panic(&ProgrammerError{Msg: "invalid or stale priority handle"})
}

// PanicDoubleDrop panics with a ProgrammerError describing a handle
// dropped more than once.
func PanicDoubleDrop() {
	panic(&ProgrammerError{Msg: "priority handle dropped more than once"})
}
