package update

import (
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
)

// Classify returns the filled-link contribution of one raised edge:
// In↔Out is 0, filled→Blank is −1, Blank→filled is +1. Any other pair
// (Blank→Blank, an unchanged orientation, an undefined value) is an
// invariant fault.
func Classify(before, after lattice.Link) int {
	if !before.Valid() || !after.Valid() || before == after {
		fault.Invariant("update.Classify", "transition outside the raise cycle",
			"before", before, "after", after)
	}
	switch {
	case before.Filled() && after.Filled():
		return 0
	case before.Filled():
		return -1
	default:
		return +1
	}
}
