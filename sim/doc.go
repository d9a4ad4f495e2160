// Package sim drives string-net Monte Carlo runs.
//
// What:
//
//   - Run builds (or resumes) one lattice, optionally equilibrates it, and then
//     for every bin takes MeasurementsPerBin measurements spaced
//     UpdatesPerMeasurement updates apart. At the end of each bin every
//     estimator averages its samples, writes them to the sink and is cleared.
//   - Each completed bin is checkpointed when a checkpoint store is attached,
//     so Resume continues from the bin after the latest checkpoint.
//   - Sweep runs one independent Run per tuning value in parallel. Lattices
//     and RNGs are never shared; only the sinks, stores and metrics are.
//
// Errors:
//
//   - config.ErrInvalidConfig before any work starts.
//   - ErrResumeWithoutCheckpoints, ErrNothingToResume for bad resume requests.
//   - Internal faults raised in the core are recovered at the Run boundary and
//     returned as errors matching fault.ErrInternal; the run is recorded as
//     failed.
//   - Context cancellation is honoured between updates in chunks and between
//     bins.
package sim
