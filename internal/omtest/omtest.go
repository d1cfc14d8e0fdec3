// Package omtest is a shared suite of order-maintenance test
// scenarios, parameterized over a backend's constructor so each
// backend's own test file can delegate to one shared implementation
// instead of three near-identical copies.
//
// Grounded on the j-hui/order-maintenance Rust crate's shared test
// helpers, whose scenarios (compare_two, insertion, transitive,
// drop_first, drop_middle, drop_some, drop_random,
// insert_some_begin/end/flipflop, insert_many_begin/end,
// insert_some_begin_many_end, insert_many_random) are each delegated
// to by every Rust backend's own #[cfg(test)] module via a
// delegate_tests! macro. Go has no such macro, but a plain function
// taking a constructor closure does the same job.
package omtest

import (
	"math/rand/v2"
	"testing"

	"github.com/dsbender/ordermaint"
)

const (
	// Some is the size used by scenarios that also check full
	// transitivity (O(n^2) pairwise comparisons), so it stays modest.
	Some = 500
	// Many is the size used by scenarios that only check contiguous
	// ordering (O(n)), so it can be larger.
	Many = 2000
)

// NewFn constructs the first priority of a fresh universe.
type NewFn func() ordermaint.Priority

// doInsert builds a sequence starting from newFn() and performs n
// inserts, each one inserting after the element at indexFn(i,
// len(ps)) and splicing the result into ps immediately after it. This
// one helper drives every insert-position pattern below.
func doInsert(t *testing.T, n int, newFn NewFn, indexFn func(step, length int) int) []ordermaint.Priority {
	t.Helper()
	ps := []ordermaint.Priority{newFn()}
	for i := 0; i < n; i++ {
		idx := indexFn(i, len(ps))
		next, err := ps[idx].Insert()
		if err != nil {
			t.Fatalf("Insert at step %d (after index %d of %d): %v", i, idx, len(ps), err)
		}
		ps = append(ps, nil)
		copy(ps[idx+2:], ps[idx+1:len(ps)-1])
		ps[idx+1] = next
	}
	return ps
}

func doInsertBegin(t *testing.T, n int, newFn NewFn) []ordermaint.Priority {
	return doInsert(t, n, newFn, func(_, _ int) int { return 0 })
}

func doInsertEnd(t *testing.T, n int, newFn NewFn) []ordermaint.Priority {
	return doInsert(t, n, newFn, func(_, length int) int { return length - 1 })
}

func doInsertFlipflop(t *testing.T, n int, newFn NewFn) []ordermaint.Priority {
	return doInsert(t, n, newFn, func(step, length int) int {
		if step%2 == 0 {
			return 0
		}
		return length - 1
	})
}

func doInsertRandom(t *testing.T, n int, newFn NewFn, seed uint64) []ordermaint.Priority {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return doInsert(t, n, newFn, func(_, length int) int { return rng.IntN(length) })
}

// assertContiguousAscending checks ps[i] < ps[i+1] for every adjacent
// pair, the same property qc.rs's run_and_check verifies.
func assertContiguousAscending(t *testing.T, ps []ordermaint.Priority) {
	t.Helper()
	for i := 0; i+1 < len(ps); i++ {
		if rel := ps[i].Compare(ps[i+1]); rel != ordermaint.Less {
			t.Fatalf("ps[%d].Compare(ps[%d]) = %v, want Less", i, i+1, rel)
		}
		if rel := ps[i+1].Compare(ps[i]); rel != ordermaint.Greater {
			t.Fatalf("ps[%d].Compare(ps[%d]) = %v, want Greater", i+1, i, rel)
		}
	}
}

// assertAllPairsAscending checks every pair, not just adjacent ones —
// transitivity, not just local ordering. O(n^2); only used on Some-sized
// sequences.
func assertAllPairsAscending(t *testing.T, ps []ordermaint.Priority) {
	t.Helper()
	for i := range ps {
		for j := range ps {
			want := ordermaint.Equal
			switch {
			case i < j:
				want = ordermaint.Less
			case i > j:
				want = ordermaint.Greater
			}
			if rel := ps[i].Compare(ps[j]); rel != want {
				t.Fatalf("ps[%d].Compare(ps[%d]) = %v, want %v", i, j, rel, want)
			}
		}
	}
}

// CompareTwo checks a freshly inserted priority sorts strictly after
// the one it was inserted from.
func CompareTwo(t *testing.T, newFn NewFn) {
	p0 := newFn()
	p1, err := p0.Insert()
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if rel := p0.Compare(p1); rel != ordermaint.Less {
		t.Fatalf("p0.Compare(p1) = %v, want Less", rel)
	}
	if rel := p1.Compare(p0); rel != ordermaint.Greater {
		t.Fatalf("p1.Compare(p0) = %v, want Greater", rel)
	}
	if rel := p0.Compare(p0); rel != ordermaint.Equal {
		t.Fatalf("p0.Compare(p0) = %v, want Equal", rel)
	}
}

// Insertion checks a short chain of inserts-at-end stays ascending.
func Insertion(t *testing.T, newFn NewFn) {
	ps := doInsertEnd(t, 10, newFn)
	assertContiguousAscending(t, ps)
}

// Transitive checks full pairwise ordering, not just adjacent pairs,
// holds over a moderate-sized chain built by interleaved insertion.
func Transitive(t *testing.T, newFn NewFn) {
	ps := doInsertFlipflop(t, Some, newFn)
	assertAllPairsAscending(t, ps)
}

// DropFirst checks dropping the earliest priority doesn't disturb the
// order of those that remain.
func DropFirst(t *testing.T, newFn NewFn) {
	ps := doInsertEnd(t, 20, newFn)
	ps[0].Drop()
	assertContiguousAscending(t, ps[1:])
}

// DropMiddle checks dropping an interior priority doesn't disturb the
// order of those that remain, including across the gap it leaves.
func DropMiddle(t *testing.T, newFn NewFn) {
	ps := doInsertEnd(t, 20, newFn)
	mid := len(ps) / 2
	ps[mid].Drop()
	remaining := append(append([]ordermaint.Priority{}, ps[:mid]...), ps[mid+1:]...)
	assertContiguousAscending(t, remaining)
}

// DropSome drops every other priority in a moderate chain and checks
// the rest remain correctly ordered.
func DropSome(t *testing.T, newFn NewFn) {
	ps := doInsertEnd(t, Some, newFn)
	var remaining []ordermaint.Priority
	for i, p := range ps {
		if i%2 == 0 {
			p.Drop()
			continue
		}
		remaining = append(remaining, p)
	}
	assertContiguousAscending(t, remaining)
}

// DropRandom drops a seeded-random subset of a moderate chain and
// checks the rest remain correctly ordered.
func DropRandom(t *testing.T, newFn NewFn) {
	ps := doInsertEnd(t, Some, newFn)
	rng := rand.New(rand.NewPCG(42, 4242))
	var remaining []ordermaint.Priority
	for _, p := range ps {
		if rng.IntN(3) == 0 {
			p.Drop()
			continue
		}
		remaining = append(remaining, p)
	}
	assertContiguousAscending(t, remaining)
}

// InsertSomeBegin builds Some priorities always inserting right after
// the first one, then checks they stayed ascending.
func InsertSomeBegin(t *testing.T, newFn NewFn) {
	assertContiguousAscending(t, doInsertBegin(t, Some, newFn))
}

// InsertSomeEnd builds Some priorities always inserting after the
// last one, then checks they stayed ascending.
func InsertSomeEnd(t *testing.T, newFn NewFn) {
	assertContiguousAscending(t, doInsertEnd(t, Some, newFn))
}

// InsertSomeFlipflop alternates inserting at the front and the back.
func InsertSomeFlipflop(t *testing.T, newFn NewFn) {
	assertContiguousAscending(t, doInsertFlipflop(t, Some, newFn))
}

// InsertManyBegin is InsertSomeBegin at the larger Many size, to
// exercise relabeling under sustained one-sided pressure.
func InsertManyBegin(t *testing.T, newFn NewFn) {
	assertContiguousAscending(t, doInsertBegin(t, Many, newFn))
}

// InsertManyEnd is InsertSomeEnd at the larger Many size.
func InsertManyEnd(t *testing.T, newFn NewFn) {
	assertContiguousAscending(t, doInsertEnd(t, Many, newFn))
}

// InsertSomeBeginManyEnd builds Some priorities at the front and checks
// them, then appends Many more after the last of them and checks that
// appended run (which starts at that last priority). The front-built
// priorities are not checked again after the appends.
func InsertSomeBeginManyEnd(t *testing.T, newFn NewFn) {
	ps := doInsertBegin(t, Some, newFn)
	assertContiguousAscending(t, ps)
	last := ps[len(ps)-1]
	more := doInsertEnd(t, Many, func() ordermaint.Priority { return last })
	assertContiguousAscending(t, more)
}

// InsertManyRandom inserts Many priorities at seeded-random existing
// positions and checks the resulting sequence stayed ascending.
func InsertManyRandom(t *testing.T, newFn NewFn) {
	assertContiguousAscending(t, doInsertRandom(t, Many, newFn, 42))
}

// decision mirrors qc.rs's Decision: either insert after an existing
// live index, or drop an existing live index.
type decision struct {
	insert bool
	index  int
}

// RunAndCheckDecisions replays a seeded-random sequence of insert/drop
// decisions against a fresh universe, checking at every step that the
// live priorities remain ascending. This is the deterministic,
// single-seed analogue of qc.rs's Decisions/Arbitrary-driven property
// test: the shrinking-quickcheck harness itself is out of scope, but
// exercising the same property under one fixed, reproducible seed is
// ordinary test hygiene.
func RunAndCheckDecisions(t *testing.T, newFn NewFn, seed uint64, steps int) {
	rng := rand.New(rand.NewPCG(seed, seed^0xD1B54A32D192ED03))
	live := []ordermaint.Priority{newFn()}

	for i := 0; i < steps; i++ {
		d := decision{insert: rng.IntN(2) == 0 || len(live) <= 1, index: rng.IntN(len(live))}
		if d.insert {
			next, err := live[d.index].Insert()
			if err != nil {
				t.Fatalf("step %d: Insert: %v", i, err)
			}
			live = append(live, nil)
			copy(live[d.index+2:], live[d.index+1:len(live)-1])
			live[d.index+1] = next
		} else {
			live[d.index].Drop()
			live = append(live[:d.index], live[d.index+1:]...)
		}
		assertContiguousAscending(t, live)
	}
}
