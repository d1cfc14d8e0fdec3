package naive

import (
	"math/big"

	"github.com/dsbender/ordermaint"
)

// bigRational is BigPriority's shared mutable state, the
// arbitrary-precision analogue of rational.
type bigRational struct {
	label *big.Int
	depth uint32
	refs  int32
}

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// BigPriority is naive's unbounded-precision counterpart: its label is
// a math/big.Int rather than a uint64, so it never overflows
// regardless of insertion depth. It exists for correctness checks
// where Priority's 64-bit label would silently wrap; math/big is the
// idiomatic Go analogue of the Rust source's num::BigUint-backed big.rs.
type BigPriority struct {
	state *bigRational
}

var _ ordermaint.Priority = (*BigPriority)(nil)

// NewBig allocates a fresh big priority at label 0, depth 0.
func NewBig() *BigPriority {
	return &BigPriority{state: &bigRational{label: new(big.Int), refs: 1}}
}

// Insert implements ordermaint.Priority, mirroring Priority.Insert but
// with unbounded-precision arithmetic.
func (p *BigPriority) Insert() (ordermaint.Priority, error) {
	s := p.state
	s.label.Mul(s.label, bigTwo)
	s.depth++
	newLabel := new(big.Int).Add(s.label, bigOne)
	return &BigPriority{state: &bigRational{label: newLabel, depth: s.depth, refs: 1}}, nil
}

// Compare implements ordermaint.Priority.
func (p *BigPriority) Compare(other ordermaint.Priority) ordermaint.Relation {
	o, ok := other.(*BigPriority)
	if !ok {
		return ordermaint.Incomparable
	}
	if p.state == o.state {
		return ordermaint.Equal
	}
	a, b := p.state, o.state
	la, lb := a.label, b.label
	switch {
	case a.depth < b.depth:
		la = new(big.Int).Lsh(a.label, uint(b.depth-a.depth))
	case a.depth > b.depth:
		lb = new(big.Int).Lsh(b.label, uint(a.depth-b.depth))
	}
	switch la.Cmp(lb) {
	case -1:
		return ordermaint.Less
	case 1:
		return ordermaint.Greater
	default:
		return ordermaint.Equal
	}
}

// Clone implements ordermaint.Priority.
func (p *BigPriority) Clone() ordermaint.Priority {
	p.state.refs++
	return &BigPriority{state: p.state}
}

// Drop implements ordermaint.Priority.
func (p *BigPriority) Drop() {
	if p.state.refs <= 0 {
		panic(&ordermaint.ProgrammerError{Msg: "priority handle dropped more than once"})
	}
	p.state.refs--
}
