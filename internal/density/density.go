// Package density precomputes the capacity table that list-range
// relabeling (Bender et al., 2002) uses to decide how far a relabel
// pass needs to widen its window before the result is dense enough.
//
// The j-hui/order-maintenance Rust crate this package is ported from
// generates this table at compile time via a proc-macro
// (order_maintenance_macros::generate_capacities!). Go has no
// const-eval macro system, so the same table is computed once, at
// package init, from the closed-form formula the macro expands to:
//
//	CAP[t][i] = floor((2 / Thresholds[t]) ^ i)
//
// for 17 thresholds spaced evenly over [1.1, 1.9) and i in [0, 64).
// A level-i subrange (a subtree spanning 2^i of the 2^64 tag space)
// holding CAP[t][i] or more tags is overfull under threshold
// Thresholds[t].
package density

import "math"

const (
	// Width is the tag bit-width; also the number of levels in the
	// conceptual weight-balanced tree list-range relabels within.
	Width = 64

	// NumThresholds is the number of density thresholds tabulated.
	NumThresholds = 17

	minThreshold = 1.1
	maxThreshold = 1.9
)

// Thresholds holds the NumThresholds density thresholds the table was
// built for, in ascending order.
var Thresholds [NumThresholds]float64

// Capacities[t][i] is the occupancy at which a level-i subrange counts
// as overfull under Thresholds[t]: a relabel widens its window while
// the window holds this many tags or more.
var Capacities [NumThresholds][Width]uint64

func init() {
	gap := (maxThreshold - minThreshold) / NumThresholds
	for t := 0; t < NumThresholds; t++ {
		threshold := minThreshold + float64(t)*gap
		Thresholds[t] = threshold
		Capacities[t] = CapacitiesForThreshold(threshold)
	}
}

// CapacitiesForThreshold computes floor((2/t)^i) for i in [0, Width),
// the same formula the table above is built from. It is exported so
// tests can pin exact values for specific thresholds independently of
// the table's row spacing.
func CapacitiesForThreshold(t float64) [Width]uint64 {
	var out [Width]uint64
	base := 2.0 / t
	acc := 1.0
	for i := 0; i < Width; i++ {
		out[i] = uint64(math.Floor(acc))
		acc *= base
	}
	return out
}

// SelectThreshold returns the largest threshold-row index whose total
// capacity (Capacities[t][Width-1]) can still accommodate one more
// priority beyond occupancy, mirroring list-range's row-selection
// scan. It reports ok=false when every row, including the loosest
// (index 0), is already exhausted — the universe is saturated.
func SelectThreshold(occupancy int) (idx int, ok bool) {
	for t := NumThresholds - 1; t >= 0; t-- {
		if uint64(occupancy+1) < Capacities[t][Width-1] {
			return t, true
		}
	}
	return 0, false
}
