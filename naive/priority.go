// Package naive implements the textbook rational-number solution to
// the order maintenance problem: each priority denotes the rational
// label/2^depth, comparison rescales whichever side has the smaller
// depth, and insertion refines the receiver in place to twice its label
// at one level deeper (the same rational value), then returns a new
// priority one unit above that, halving the gap above the receiver. It
// needs no arena, no relabeling, and no saturation handling beyond
// native integer overflow — which is exactly why it exists: as a simple
// reference run through the same shared scenarios as the other two
// backends, not as a backend meant for production use.
//
// Ported from the j-hui/order-maintenance Rust crate's naive backend.
package naive

import "github.com/dsbender/ordermaint"

// rational is the shared, mutable state behind a Priority and every
// clone of it — mirroring the Rust source's Rc<Cell<...>> sharing, so
// that calling Insert through any one handle is visible to every
// clone.
type rational struct {
	label uint64
	depth uint32
	refs  int32
}

// Priority is a single rational-label priority.
type Priority struct {
	state *rational
}

var _ ordermaint.Priority = (*Priority)(nil)

// New allocates a fresh priority at label 0, depth 0.
func New() *Priority {
	return &Priority{state: &rational{refs: 1}}
}

// Insert implements ordermaint.Priority. It refines the receiver's own
// representation to one level deeper — label*2, depth+1 denotes the
// same rational value as label, depth, so the receiver's position does
// not change — then returns a new priority one unit above that at the
// same depth, filling half of whatever gap remained above the
// receiver. Repeated inserts through the same handle therefore nest
// ever closer to the receiver, which is why this backend needs
// unbounded depth (and, in the fixed-width Priority, can eventually
// overflow) where the arena-backed backends never do.
func (p *Priority) Insert() (ordermaint.Priority, error) {
	s := p.state
	s.label *= 2
	s.depth++
	return &Priority{state: &rational{label: s.label + 1, depth: s.depth, refs: 1}}, nil
}

// Compare implements ordermaint.Priority by rescaling whichever side
// has the smaller depth up to match the other, then comparing labels
// directly.
func (p *Priority) Compare(other ordermaint.Priority) ordermaint.Relation {
	o, ok := other.(*Priority)
	if !ok {
		return ordermaint.Incomparable
	}
	if p.state == o.state {
		return ordermaint.Equal
	}
	a, b := p.state, o.state
	var la, lb uint64
	switch {
	case a.depth == b.depth:
		la, lb = a.label, b.label
	case a.depth < b.depth:
		la, lb = a.label<<(b.depth-a.depth), b.label
	default:
		la, lb = a.label, b.label<<(a.depth-b.depth)
	}
	switch {
	case la < lb:
		return ordermaint.Less
	case la > lb:
		return ordermaint.Greater
	default:
		return ordermaint.Equal
	}
}

// Clone implements ordermaint.Priority, returning a new handle that
// shares this priority's mutable state.
func (p *Priority) Clone() ordermaint.Priority {
	p.state.refs++
	return &Priority{state: p.state}
}

// Drop implements ordermaint.Priority. The naive backend keeps no
// arena to release; Drop only tracks that the handle is gone, so a
// double Drop is still caught.
func (p *Priority) Drop() {
	if p.state.refs <= 0 {
		panic(&ordermaint.ProgrammerError{Msg: "priority handle dropped more than once"})
	}
	p.state.refs--
}
