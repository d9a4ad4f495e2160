// Package winding extracts the winding numbers of a string-net lattice.
//
// Vertical(c) sums the signs of the E links of every site in column c, the
// net flux through the cut between columns c and c+1. Horizontal(r) sums the
// N links of row r. Out counts +1, In −1, Blank 0; fake sites are read
// through their materialized view, which applies the flip.
//
// Flux is conserved modulo 3 at every site, so the sums along two parallel
// cuts agree modulo 3 for any reachable configuration. Compute evaluates two
// cuts per axis and treats a disagreement as an invariant fault.
package winding
