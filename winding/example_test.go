package winding_test

import (
	"fmt"

	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/winding"
)

func ExampleCompute() {
	lat, _ := lattice.NewStriped(6, 4)
	n := winding.Compute(lat)
	fmt.Println("horizontal:", n.Horizontal, "vertical:", n.Vertical, "raw vertical:", n.RawVertical)

	// Output:
	// horizontal: 0 vertical: 1 raw vertical: 4
}
