// Package estimator accumulates observables of a string-net lattice over
// measurements and emits one averaged result per bin.
//
// Every estimator implements Measurable:
//
//	Measure(lat)                       accumulate one sample
//	FinalizeBinAndWrite(ctx, n)        average over n samples and emit to a Sink
//	Clear()                            reset accumulators for the next bin
//
// Available estimators (see Names):
//
//   - density:            per stored site and direction, In / Out / filled frequencies.
//   - total_link_count:   mean number of filled edges.
//   - winding_count:      winding numbers of the last sample and sector frequencies.
//   - winding_variance:   ⟨W²⟩ − ⟨W⟩² of the raw winding sums per axis.
//   - cluster_size:       mean cluster size, cluster count and largest cluster.
//   - origin_correlation: parallel-link correlation of every stored site with
//                         the origin's E and N links, split by origin orientation.
//
// Results go to a Sink: MemorySink for tests, LogSink for slog output,
// or the SQLite sink in store/sqlite.
package estimator
