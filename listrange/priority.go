// Package listrange implements Bender et al. (2002)'s list-range
// relabeling solution to the order maintenance problem: priorities
// carry integer tags over a fixed 64-bit range, conceptually indexing
// leaves of a weight-balanced binary tree; a relabel widens its window
// one tree level at a time until it finds a subrange sparse enough,
// under a chosen density threshold, to relabel without widening again
// soon.
//
// Ported from the j-hui/order-maintenance Rust crate's list-range
// implementation onto the slab arena in internal/slab, with one
// deliberate deviation: the reference implementation's relabel window
// is half-open ([min, max)); this port makes both ends inclusive and
// has the scan loop walk through max as well as min, which removes an
// off-by-one that otherwise undercounts the rightmost node in the
// window.
package listrange

import (
	"github.com/dsbender/ordermaint"
	"github.com/dsbender/ordermaint/internal/density"
	"github.com/dsbender/ordermaint/internal/errs"
	"github.com/dsbender/ordermaint/internal/obs"
	"github.com/dsbender/ordermaint/internal/slab"
)

const backendName = "list_range"

// maxLabel stands in for the base node's label when computing the gap
// available after the last real priority: the base is otherwise
// labeled 0, which would make that gap look negative.
const maxLabel uint64 = ^uint64(0)

// Priority is a totally-ordered priority implementing list-range
// relabeling. Comparison is O(1); Insert is amortized O(log n).
type Priority struct {
	arena *slab.Arena
	key   slab.Key
}

var _ ordermaint.Priority = (*Priority)(nil)

// New allocates a fresh universe. As in tag-range, the arena's own
// base is a hidden sentinel; New inserts the first user-visible
// priority right after it, at label 0 — list-range never needs room
// before the first priority, only after the last, so starting flush
// against the sentinel costs nothing.
func New() *Priority {
	a := slab.New()
	key := a.InsertAfter(0, a.Base())
	return &Priority{arena: a, key: key}
}

func (p *Priority) node() *slab.Node { return p.arena.Get(p.key) }

func (p *Priority) relative() uint64 { return p.node().Label() }

func (p *Priority) effectiveSuccessorLabel(succKey slab.Key) uint64 {
	if succKey == p.arena.Base() {
		return maxLabel
	}
	return p.arena.Get(succKey).Label()
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

// Insert implements ordermaint.Priority. It takes the fast path —
// allocate directly at the arithmetic midpoint between this priority
// and its successor — whenever that midpoint is distinct from both
// endpoints; otherwise it relabels a window around this priority first.
func (p *Priority) Insert() (ordermaint.Priority, error) {
	label, err := p.prepareSlot()
	if err != nil {
		return nil, err
	}
	newKey := p.arena.InsertAfter(label, p.key)
	obs.RecordInsert(backendName)
	return &Priority{arena: p.arena, key: newKey}, nil
}

func (p *Priority) prepareSlot() (uint64, error) {
	this := p.node()
	thisLabel := this.Label()
	nextKey := this.Next()
	nextLabel := p.effectiveSuccessorLabel(nextKey)

	if thisLabel+1 == nextLabel {
		if err := p.relabel(); err != nil {
			return 0, err
		}
		this = p.node()
		thisLabel = this.Label()
		nextKey = this.Next()
		nextLabel = p.effectiveSuccessorLabel(nextKey)
	}

	return (thisLabel & nextLabel) + ((thisLabel ^ nextLabel) >> 1), nil
}

// relabel widens a window around this priority, one conceptual tree
// level at a time, until it finds a window whose occupancy is under
// the chosen threshold's capacity for that level, then spreads that
// window's labels evenly across its span. The window bounds
// [minLab, maxLab] are both inclusive; the base node is never counted
// or relabeled, since its label must stay fixed at 0 for every
// priority's relative() to remain meaningful.
func (p *Priority) relabel() error {
	total := p.arena.Total()
	tIdx, ok := density.SelectThreshold(total)
	if !ok {
		obs.RecordSaturation(backendName, total)
		return errs.NewSaturationError(backendName, p.arena.ID.String(), total)
	}

	level := 0
	rangeSize := uint64(1)
	tag := p.node().Label()
	minLab, maxLab := tag, tag

	beginKey, begin := p.key, p.node()
	endKey, end := p.node().Next(), p.arena.Get(p.node().Next())
	rangeCount := 1 // this itself

	for {
		for {
			prevKey := begin.Prev()
			if prevKey == p.arena.Base() {
				break
			}
			prev := p.arena.Get(prevKey)
			if prev.Label() < minLab {
				break
			}
			beginKey, begin = prevKey, prev
			rangeCount++
		}
		for endKey != p.arena.Base() && end.Label() <= maxLab {
			rangeCount++
			endKey = end.Next()
			end = p.arena.Get(endKey)
		}

		if rangeCount < int(density.Capacities[tIdx][level]) {
			spreadLabels(p.arena, beginKey, endKey, rangeCount, minLab, rangeSize)
			obs.RecordRelabel(backendName, rangeCount)
			return nil
		}

		level++
		if level >= density.Width {
			obs.RecordSaturation(backendName, total)
			return errs.NewSaturationError(backendName, p.arena.ID.String(), total)
		}
		rangeSize *= 2
		tag >>= 1
		minLab = tag << level
		maxLab = ((tag + 1) << level) - 1
	}
}

// spreadLabels relabels the nodes from beginKey (inclusive) up to but
// not including endKeyExclusive, spacing rangeCount labels evenly
// across [minLab, minLab+rangeSize), spreading any remainder across
// the earliest nodes so every gap differs by at most one unit.
func spreadLabels(a *slab.Arena, beginKey, endKeyExclusive slab.Key, rangeCount int, minLab, rangeSize uint64) {
	gap := rangeSize / uint64(rangeCount)
	rem := int(rangeSize % uint64(rangeCount))

	label := minLab
	curKey := beginKey
	cur := a.Get(curKey)
	for {
		cur.SetLabel(label)
		curKey = cur.Next()
		if curKey == endKeyExclusive {
			return
		}
		cur = a.Get(curKey)
		label += gap
		if rem > 0 {
			label++
			rem--
		}
	}
}
