// Package fault defines the distinguished internal-fault error kind shared by
// the stringnet core packages.
//
// What:
//
//   - Precondition faults: a caller broke an API contract (for example asked for
//     the stored link of a site that is not on the stored sublattice, or passed
//     negative coordinates where wrapped ones are required).
//   - Invariant faults: the core detected that its own bookkeeping is wrong (a
//     plaquette walk that does not close, a cluster traversal that reaches a
//     vertex owned by another cluster, a link transition outside the
//     raise/lower cycle, a filled-link counter that went negative).
//
// Why:
//
//   - Both kinds are programmer errors, never bad input. They are raised with
//     panic deep inside tight loops so the hot paths stay free of error
//     plumbing, and are converted back into an ordinary error at the nearest
//     run or test boundary with Recover or Catch.
//   - Every fault carries its operation name, ordered diagnostic fields
//     (position, direction, lattice size, ...) and a stack trace captured with
//     github.com/pkg/errors, so a failing run reports where it broke.
//
// Errors:
//
//   - ErrInternal matches every *Fault through errors.Is.
//
// Usage:
//
//	func Run(...) (err error) {
//		defer fault.Recover(&err)
//		...
//	}
package fault
