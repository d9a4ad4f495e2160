// Package walk moves a single loop head across the lattice, raising every
// physical edge it crosses in its direction of travel.
//
// What:
//
//   - Walker tracks a start site and a current site on the torus.
//   - RaiseStep(d) raises the edge between the current site and its
//     neighbour in direction d, then moves the head onto that neighbour.
//   - Closed reports whether the head is back on its start after at least
//     one step, i.e. whether the raised edges form a closed loop.
//
// Raising is always seen from the site the head leaves. From a real site the
// stored link is raised; from a fake site the head first advances onto the
// real neighbour and lowers that neighbour's link in the opposite direction,
// which is the same edge raised from the other end. Both cases report the
// link before and after the step as seen from the departed site, so callers
// can classify the change without caring which sublattice they stood on.
//
// A closed walk conserves Z3 flux at every site it visits, which is what
// keeps the update engine inside the physical subspace.
//
// Complexity:
//
//   - RaiseStep: O(1).
//
// Errors:
//
//   - Walkers are internal plumbing: a nil lattice is a precondition fault.
package walk
