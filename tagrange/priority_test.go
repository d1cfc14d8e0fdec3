package tagrange

import (
	"fmt"
	"testing"

	"github.com/dsbender/ordermaint"
	"github.com/dsbender/ordermaint/internal/omtest"
)

func newFn() ordermaint.Priority { return New() }

func TestCompareTwo(t *testing.T)   { omtest.CompareTwo(t, newFn) }
func TestInsertion(t *testing.T)    { omtest.Insertion(t, newFn) }
func TestTransitive(t *testing.T)   { omtest.Transitive(t, newFn) }
func TestDropFirst(t *testing.T)    { omtest.DropFirst(t, newFn) }
func TestDropMiddle(t *testing.T)   { omtest.DropMiddle(t, newFn) }
func TestDropSome(t *testing.T)     { omtest.DropSome(t, newFn) }
func TestDropRandom(t *testing.T)   { omtest.DropRandom(t, newFn) }

func TestInsertSomeBegin(t *testing.T)         { omtest.InsertSomeBegin(t, newFn) }
func TestInsertSomeEnd(t *testing.T)           { omtest.InsertSomeEnd(t, newFn) }
func TestInsertSomeFlipflop(t *testing.T)      { omtest.InsertSomeFlipflop(t, newFn) }
func TestInsertManyBegin(t *testing.T)         { omtest.InsertManyBegin(t, newFn) }
func TestInsertManyEnd(t *testing.T)           { omtest.InsertManyEnd(t, newFn) }
func TestInsertSomeBeginManyEnd(t *testing.T)  { omtest.InsertSomeBeginManyEnd(t, newFn) }
func TestInsertManyRandom(t *testing.T)        { omtest.InsertManyRandom(t, newFn) }

func TestRunAndCheckDecisions(t *testing.T) {
	omtest.RunAndCheckDecisions(t, newFn, 42, omtest.Some)
}

func TestIncomparableAcrossUniverses(t *testing.T) {
	p0 := New()
	q0 := New()
	if rel := p0.Compare(q0); rel != ordermaint.Incomparable {
		t.Fatalf("p0.Compare(q0) across universes = %v, want Incomparable", rel)
	}
}

func TestDoubleDropPanics(t *testing.T) {
	p0 := New()
	p1, err := p0.Insert()
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	p1.Drop()
	defer func() {
		if recover() == nil {
			t.Fatalf("dropping p1 twice should panic")
		}
	}()
	p1.Drop()
}

func TestUseAfterDropPanics(t *testing.T) {
	p0 := New()
	p1, err := p0.Insert()
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	p1.Drop()
	defer func() {
		if recover() == nil {
			t.Fatalf("comparing a dropped handle should panic")
		}
	}()
	p1.Compare(p0)
}

func TestCloneSharesUniverseAndPosition(t *testing.T) {
	p0 := New()
	clone := p0.Clone()
	if rel := p0.Compare(clone); rel != ordermaint.Equal {
		t.Fatalf("p0.Compare(clone) = %v, want Equal", rel)
	}
	// Dropping the clone must not invalidate p0; the node should only be
	// freed once both handles have dropped.
	clone.Drop()
	if rel := p0.Compare(p0); rel != ordermaint.Equal {
		t.Fatalf("p0 still usable after dropping its clone, got %v", rel)
	}
}

// ExampleNew demonstrates that Insert always lands strictly between
// its receiver and whatever currently follows it, regardless of
// insertion order.
func ExampleNew() {
	p0 := New()
	p2, _ := p0.Insert()
	p1, _ := p0.Insert()
	p3, _ := p2.Insert()

	fmt.Println(p0.Compare(p1), p0.Compare(p2), p1.Compare(p2), p2.Compare(p3))
	// Output:
	// Less Less Less Less
}
