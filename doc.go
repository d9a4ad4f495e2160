// Package stringnet samples closed Z3 string-net configurations on a periodic
// square lattice with Metropolis Monte Carlo, and measures them.
//
// 🚀 What is stringnet?
//
//	A small simulation toolkit that brings together:
//		• Lattice: an Lx×Ly torus storing links only on the (x+y) even sites
//		• Walker: raise steps that keep every vertex flux-conserving mod 3
//		• Updates: plaquette (Local) and closed random-loop (Walk) moves
//		• Clusters: a resumable depth-first traversal over filled links
//		• Winding numbers: flux through horizontal and vertical cuts
//		• Estimators: densities, link counts, winding statistics, cluster
//		  sizes and origin correlations, averaged per bin
//		• Driver: equilibration, bins, checkpoints, parallel tuning sweeps
//
// ✨ Guarantees
//
//   - Every accepted or rejected move leaves a closed string-net; rejection
//     restores the full pre-move lattice.
//   - The filled-link counter always equals a full scan.
//   - Internal faults carry position, direction and lattice size, and turn
//     into errors matching fault.ErrInternal at run boundaries.
//
// Packages:
//
//	lattice/          Point, BoundPoint, Link, Direction, Vertex, Lattice
//	walk/             raise-step walker with real/fake site handling
//	update/           Monte Carlo moves, Metropolis acceptance, metrics
//	cluster/          step-by-step cluster traversal and whole-lattice labeling
//	winding/          winding numbers along row and column cuts
//	estimator/        Measurable estimators and record sinks
//	fault/            precondition and invariant faults
//	config/           YAML + environment configuration with validation
//	sim/              run and sweep drivers
//	store/sqlite/     run metadata and results tables
//	store/checkpoint/ per-bin lattice checkpoints
//	cmd/stringnet/    command-line interface
//
// Quick ASCII example, the striped 4×2 configuration (every row carries one
// eastward string):
//
//	    ●──>──○──>──●──>──○──>
//	    ○──>──●──>──○──>──●──>
//
// ● real sites are stored, ○ fake sites are derived from their neighbours.
//
//	go install github.com/katalvlaran/stringnet/cmd/stringnet@latest
package stringnet
