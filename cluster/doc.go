// Package cluster finds connected components of the non-Blank link graph on
// a string-net lattice.
//
// What:
//
//   - Traversal is an explicit-stack depth-first search whose whole state is
//     a plain struct: a stack of "directions not yet tried" frames, one per
//     vertex on the current path, the walk list of directions actually taken,
//     the clustered map from site to cluster id, and the current and start
//     sites. Step advances it by exactly one move so a viewer can animate
//     the search; Run drives it to completion.
//   - Label scans every site of the torus (both sublattices), skips sites
//     already clustered or without filled links, and runs a fresh traversal
//     from each remaining one.
//   - Components is an independent breadth-first labeling used to
//     cross-check the traversal.
//
// Step semantics:
//
//	pop frame
//	frame empty:   pop walk list and step back (Backtracking),
//	               or finish if both are empty (Done)
//	frame nonempty: take its last direction, push the rest back, step,
//	               push the direction on the walk list, then
//	               new site            → mark, push its filled directions (Exploring)
//	               same cluster        → pop walk list, step back (Backtracking)
//	               different cluster   → invariant fault
//
// A seed without filled links has no cluster and is never marked.
//
// Complexity:
//
//   - Run / Label: O(Lx·Ly) time, each filled edge is crossed at most twice
//     in each direction. Memory O(Lx·Ly) for the clustered map and stacks.
//   - Components:  O(Lx·Ly) time and memory.
//
// Errors:
//
//   - Step without Begin is a precondition fault.
//   - Reaching a site owned by another cluster, a reached site without filled
//     links, or mismatched stack and walk-list lengths are invariant faults.
package cluster
