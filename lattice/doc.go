// Package lattice stores the link configuration of a Z3 string-net on a
// two-dimensional torus and provides the coordinate and link primitives every
// other stringnet package is built on.
//
// What:
//
//   - Point / BoundPoint: integer coordinates and their wrap-around arithmetic
//     on an Lx×Ly torus (true modulus, so negative steps wrap correctly).
//   - Direction: N, E, S, W with a fixed iteration order and Flip.
//   - Link: Blank, Out, In; Raise cycles Blank→Out→In→Blank, Lower inverts it,
//     Flip swaps In and Out (the same edge seen from its other endpoint).
//   - Lattice: stores only the "real" sublattice, the sites with (x+y) even.
//     Every edge of the torus joins a real site to a "fake" one, so storing
//     the real half holds each edge exactly once. Fake sites are materialized
//     on demand by reading the opposite link of each real neighbor and
//     flipping it (VertexAt).
//   - Named builders: Blank, Striped (horizontal strings) and Staggered
//     (vertical strings) reference configurations.
//   - Snapshot/Restore and a compact binary encoding for rollback and
//     checkpoints.
//
// Invariants:
//
//   - FilledLinks() always equals CountNonBlankLinks(), the number of
//     non-Blank stored links, which is also the number of filled edges of the
//     torus. It is maintained incrementally by every mutation and never drops
//     below zero.
//   - A materialized site reports the flipped value of the stored link on the
//     other end of each of its edges.
//
// Errors:
//
//   - ErrInvalidSize: Lx or Ly is odd or smaller than 2.
//   - ErrUnknownInitial: unknown named configuration.
//   - ErrFakePoint: SafeLinkAt asked for a site that is not stored.
//   - ErrCorruptEncoding: UnmarshalBinary received malformed bytes.
//
// Calling LinkAt, SetLink, OutRaiseLink or OutLowerLink on a fake site, or
// PointReal on a negative coordinate, is a programmer error and raises a
// fault.KindPrecondition fault.
//
// Complexity:
//
//   - Link access, raise/lower, site materialization: O(1).
//   - CountNonBlankLinks, Snapshot, Restore: O(Lx·Ly).
package lattice
