// Package update implements the Monte Carlo move generator for the string-net
// lattice: proposal, bookkeeping, and Metropolis accept/reject with full
// rollback.
//
// What:
//
//   - Local moves raise the four edges of a random plaquette (N, E, S, W).
//   - Walk moves take uniformly random raise steps from a random site until
//     the head returns to it, so a single move can wrap the torus and change
//     winding sectors.
//   - Every raised edge is classified: In↔Out is 0, a filled edge becoming
//     Blank is −1, a Blank edge becoming filled is +1. Anything else is an
//     invariant fault.
//   - The summed change must match the lattice's filled-link counter delta.
//   - The proposal is accepted with probability min(1, tuning^Δ), where Δ is
//     the change in filled links; a rejected proposal restores the snapshot
//     taken before the move.
//
// Weights:
//
//   The stationary weight of a configuration with k filled edges is
//   tuning^k / Z with Z = Σ_{k=0}^{2·Lx·Ly} tuning^k. Z cancels in the
//   acceptance ratio; Normalization and Weight expose it for diagnostics.
//   With tuning = 1 every proposal is accepted.
//
// Options:
//
//   - WithKind(kind)          Local (default) or Walk.
//   - WithTuning(t)           positive, finite weight per filled edge (default 1).
//   - WithSeed(seed)          deterministic *rand.Rand from seed.
//   - WithRand(r)             caller-owned *rand.Rand.
//   - WithLogger(l)           *slog.Logger for per-move debug records.
//   - WithMetrics(m)          shared Prometheus collectors (see NewMetrics).
//
// Complexity:
//
//   - Local move: O(Lx·Ly) for the snapshot, O(1) for the move itself.
//   - Walk move:  O(Lx·Ly) snapshot plus the loop length, which has expected
//     value Lx·Ly (mean return time of a random walk on the torus).
//
// Errors:
//
//   - ErrNilLattice, ErrInvalidTuning, ErrUnknownKind from New / ParseKind.
//   - Coordinate or bookkeeping bugs surface as *fault.Fault panics; recover
//     them at the run boundary with fault.Recover.
package update
