// Package ordermaint solves the order maintenance problem: maintaining
// a dynamic, totally-ordered sequence of opaque priorities that
// supports O(1) comparison and amortized sub-linear insertion, without
// ever renumbering the whole sequence.
//
// Three backends implement the Priority/Backend interfaces below:
//
//   - tagrange implements Dietz & Sleator (1987)'s tag-range relabeling.
//   - listrange implements Bender et al. (2002)'s list-range relabeling.
//   - naive implements the textbook rational-number reference (and its
//     unbounded-precision variant, naive.BigPriority), useful as an
//     oracle in tests but not for production use.
//
// A universe is everything reachable from a single Backend.New() call.
// For tagrange and listrange, priorities are only comparable within the
// universe they came from; comparing across universes reports
// Incomparable rather than panicking or guessing. The naive backends
// carry no universe identity: priorities from separate naive.New (or
// naive.NewBig) calls compare by their rational values.
package ordermaint

// Relation is the result of comparing two priorities.
type Relation int

const (
	// Less means the receiver sorts before the argument.
	Less Relation = iota
	// Equal means the two priorities denote the same position.
	Equal
	// Greater means the receiver sorts after the argument.
	Greater
	// Incomparable means the two priorities come from different
	// universes and have no defined order relative to each other.
	Incomparable
)

// String renders r for logging and test failure messages.
func (r Relation) String() string {
	switch r {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	case Incomparable:
		return "Incomparable"
	default:
		return "Relation(?)"
	}
}

// Priority is a single position in a totally-ordered universe.
type Priority interface {
	// Insert allocates a new priority that sorts strictly between the
	// receiver and its current successor, without disturbing the
	// relative order of any other existing priority. It can fail with
	// a *SaturationError if the universe has no room left.
	Insert() (Priority, error)

	// Clone returns a new handle to the same position, sharing the
	// underlying universe. The returned handle must be Dropped
	// independently of the receiver.
	Clone() Priority

	// Drop releases this handle. Once every handle to a given position
	// has been dropped, its storage is reclaimed. Dropping a handle
	// twice is a programmer error and panics.
	Drop()

	// Compare orders the receiver against other. It never returns an
	// error; it reports Incomparable when other is of a different
	// backend type or, for tagrange and listrange, belongs to a
	// different universe.
	Compare(other Priority) Relation
}

// Backend constructs the first priority of a fresh universe.
type Backend interface {
	New() Priority
}
