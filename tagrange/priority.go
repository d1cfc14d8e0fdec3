// Package tagrange implements Dietz & Sleator (1987)'s tag-range
// relabeling solution to the order maintenance problem: priorities
// carry integer tags on a circle modulo 2^64, and inserting between
// two adjacent tags that have no room between them triggers a local
// "sufficient suffix" re-space rather than a global renumbering.
//
// Ported from the j-hui/order-maintenance Rust crate's tag-range
// implementation onto the slab arena in internal/slab. Go's native
// unsigned-integer wraparound gives this package the circle-modulo-2^64
// arithmetic the Rust source had to build wrapping_add/wrapping_sub
// helpers for; a bare uint64 and ordinary +/- suffice here.
package tagrange

import (
	"math/bits"

	"github.com/dsbender/ordermaint"
	"github.com/dsbender/ordermaint/internal/errs"
	"github.com/dsbender/ordermaint/internal/obs"
	"github.com/dsbender/ordermaint/internal/slab"
)

const backendName = "tag_range"

// maxLabel is the largest representable tag; labels wrap through it
// back to 0 via ordinary unsigned-integer overflow.
const maxLabel uint64 = ^uint64(0)

// Priority is a totally-ordered priority implementing tag-range
// relabeling. Comparison is O(1); Insert is amortized O(log n).
type Priority struct {
	arena *slab.Arena
	key   slab.Key
}

var _ ordermaint.Priority = (*Priority)(nil)

// New allocates a fresh universe. The arena's base node is a sentinel
// that is never user-visible for this backend; New inserts the first
// user-visible priority immediately after it, at the midpoint of the
// label space, so it has maximal room to relabel toward in either
// direction.
func New() *Priority {
	a := slab.New()
	key := a.InsertAfter(maxLabel/2, a.Base())
	return &Priority{arena: a, key: key}
}

func (p *Priority) node() *slab.Node { return p.arena.Get(p.key) }

// relative reports this priority's tag relative to the sentinel base.
// The base starts at label 0, but a re-space whose walk passes the
// sentinel rewrites its label along with the others, so the base's
// current label is subtracted rather than assumed to be 0.
func (p *Priority) relative() uint64 {
	return p.node().Label() - p.arena.Get(p.arena.Base()).Label()
}

// Compare implements ordermaint.Priority.
func (p *Priority) Compare(other ordermaint.Priority) ordermaint.Relation {
	o, ok := other.(*Priority)
	if !ok || o.arena != p.arena {
		return ordermaint.Incomparable
	}
	if p.key == o.key {
		return ordermaint.Equal
	}
	switch pr, or := p.relative(), o.relative(); {
	case pr < or:
		return ordermaint.Less
	case pr > or:
		return ordermaint.Greater
	default:
		return ordermaint.Equal
	}
}

// Clone implements ordermaint.Priority.
func (p *Priority) Clone() ordermaint.Priority {
	p.node().IncRef()
	return &Priority{arena: p.arena, key: p.key}
}

// Drop implements ordermaint.Priority.
func (p *Priority) Drop() {
	if p.node().DecRef() {
		p.arena.Remove(p.key)
	}
}

// Insert implements ordermaint.Priority. It measures how many
// successors share an insufficient gap with the receiver, re-spaces
// exactly that many labels if necessary, then allocates the new
// priority at the midpoint between the receiver and its (possibly
// updated) successor.
func (p *Priority) Insert() (ordermaint.Priority, error) {
	if err := p.relabel(); err != nil {
		return nil, err
	}
	label := p.midpointToSuccessor()
	newKey := p.arena.InsertAfter(label, p.key)
	obs.RecordInsert(backendName)
	return &Priority{arena: p.arena, key: newKey}, nil
}

// relabel implements the measure-then-respace phase: it walks forward
// from the receiver counting successors until either the weight (tag
// distance to the k-th successor) exceeds k^2 — the "sufficient
// suffix" has been found — or weight wraps to exactly zero, meaning
// the walk went all the way around the circle back to the receiver
// itself, which must be treated as spanning the full 2^64 circle
// rather than a literal zero-width span.
func (p *Priority) relabel() error {
	thisLabel := p.node().Label()
	count := 1
	succKey := p.node().Next()
	succ := p.arena.Get(succKey)
	weight := succ.Label() - thisLabel

	for weight != 0 && weight <= uint64(count)*uint64(count) {
		if count >= p.arena.Total() {
			obs.RecordSaturation(backendName, p.arena.Total())
			return errs.NewSaturationError(backendName, p.arena.ID.String(), p.arena.Total())
		}
		succKey = succ.Next()
		succ = p.arena.Get(succKey)
		count++
		weight = succ.Label() - thisLabel
	}

	if count <= 1 {
		return nil
	}

	walkKey := p.node().Next()
	walk := p.arena.Get(walkKey)
	for j := 1; j < count; j++ {
		var spaced uint64
		if weight == 0 {
			// The walk wrapped the whole circle: the true weight is the
			// unrepresentable 2^64, so (weight*j)/count must be computed
			// as floor(2^64*j/count) via a 128-bit division instead of
			// the literal uint64 multiply-then-divide used below, which
			// would silently compute on a wrapped-to-zero weight.
			spaced, _ = bits.Div64(uint64(j), 0, uint64(count))
		} else {
			spaced = weight * uint64(j) / uint64(count)
		}
		walk.SetLabel(thisLabel + spaced)
		walkKey = walk.Next()
		walk = p.arena.Get(walkKey)
	}
	obs.RecordRelabel(backendName, count-1)
	return nil
}

// midpointToSuccessor must run after relabel has finished, so it reads
// the successor's label post-respace rather than a stale pre-respace
// value.
func (p *Priority) midpointToSuccessor() uint64 {
	thisLabel := p.node().Label()
	succLabel := p.arena.Get(p.node().Next()).Label()
	return thisLabel + (succLabel-thisLabel)/2
}
