package tagrange

import (
	"math/rand/v2"
	"testing"
)

func BenchmarkInsertAtEnd(b *testing.B) {
	p := New()
	for i := 0; i < b.N; i++ {
		next, err := p.Insert()
		if err != nil {
			b.Fatalf("Insert: %v", err)
		}
		p = next.(*Priority)
	}
}

func BenchmarkInsertAtFront(b *testing.B) {
	p0 := New()
	for i := 0; i < b.N; i++ {
		if _, err := p0.Insert(); err != nil {
			b.Fatalf("Insert: %v", err)
		}
	}
}

func BenchmarkInsertFlipFlop(b *testing.B) {
	p0 := New()
	tail := p0
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			next, err := p0.Insert()
			if err != nil {
				b.Fatalf("Insert: %v", err)
			}
			_ = next
		} else {
			next, err := tail.Insert()
			if err != nil {
				b.Fatalf("Insert: %v", err)
			}
			tail = next.(*Priority)
		}
	}
}

func BenchmarkInsertSeededRandom(b *testing.B) {
	rng := rand.New(rand.NewPCG(42, 7))
	ps := []*Priority{New()}
	for i := 0; i < b.N; i++ {
		idx := rng.IntN(len(ps))
		next, err := ps[idx].Insert()
		if err != nil {
			b.Fatalf("Insert: %v", err)
		}
		ps = append(ps, next.(*Priority))
	}
}

func BenchmarkCompare(b *testing.B) {
	p0 := New()
	p1, err := p0.Insert()
	if err != nil {
		b.Fatalf("Insert: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p0.Compare(p1)
	}
}
