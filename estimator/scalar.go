package estimator

import (
	"context"

	"github.com/katalvlaran/stringnet/cluster"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/winding"
)

// TotalLinkCount averages the number of filled edges.
type TotalLinkCount struct {
	emitter
	count int
}

// NewTotalLinkCount returns a total-link-count estimator.
func NewTotalLinkCount(sink Sink) (*TotalLinkCount, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	return &TotalLinkCount{emitter: emitter{name: NameTotalLinkCount, sink: sink}}, nil
}

// Measure scans storage rather than trusting the running counter.
func (t *TotalLinkCount) Measure(lat *lattice.Lattice) {
	t.count += lat.CountNonBlankLinks()
}

// FinalizeBinAndWrite implements Measurable.
func (t *TotalLinkCount) FinalizeBinAndWrite(ctx context.Context, denominator int) error {
	if err := checkDenominator(denominator); err != nil {
		return err
	}

	return t.emit(ctx, []Record{{Values: []Value{
		{Name: "links", Value: float64(t.count) / float64(denominator)},
	}}})
}

// Clear implements Measurable.
func (t *TotalLinkCount) Clear() { t.count = 0 }

// WindingCount reports the winding numbers of the last sample of a bin and
// the fraction of samples in each Z3 sector.
type WindingCount struct {
	emitter
	last       winding.Numbers
	horizontal [winding.Modulus]int
	vertical   [winding.Modulus]int
}

// NewWindingCount returns a winding-count estimator.
func NewWindingCount(sink Sink) (*WindingCount, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	return &WindingCount{emitter: emitter{name: NameWindingCount, sink: sink}}, nil
}

// Measure implements Measurable.
func (w *WindingCount) Measure(lat *lattice.Lattice) {
	w.last = winding.Compute(lat)
	w.horizontal[w.last.Horizontal]++
	w.vertical[w.last.Vertical]++
}

// FinalizeBinAndWrite implements Measurable.
func (w *WindingCount) FinalizeBinAndWrite(ctx context.Context, denominator int) error {
	if err := checkDenominator(denominator); err != nil {
		return err
	}
	den := float64(denominator)
	vals := []Value{
		{Name: "horizontal", Value: float64(w.last.Horizontal)},
		{Name: "vertical", Value: float64(w.last.Vertical)},
		{Name: "raw_horizontal", Value: float64(w.last.RawHorizontal)},
		{Name: "raw_vertical", Value: float64(w.last.RawVertical)},
	}
	for k := 0; k < winding.Modulus; k++ {
		vals = append(vals,
			Value{Name: sectorName("horizontal", k), Value: float64(w.horizontal[k]) / den},
			Value{Name: sectorName("vertical", k), Value: float64(w.vertical[k]) / den},
		)
	}

	return w.emit(ctx, []Record{{Values: vals}})
}

// Clear implements Measurable.
func (w *WindingCount) Clear() {
	w.last = winding.Numbers{}
	w.horizontal = [winding.Modulus]int{}
	w.vertical = [winding.Modulus]int{}
}

func sectorName(axis string, k int) string {
	return axis + "_sector_" + string(rune('0'+k))
}

// WindingVariance reports ⟨W²⟩ − ⟨W⟩² of the raw winding sums per axis.
type WindingVariance struct {
	emitter
	horizontal []int
	vertical   []int
}

// NewWindingVariance returns a winding-variance estimator.
func NewWindingVariance(sink Sink) (*WindingVariance, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	return &WindingVariance{emitter: emitter{name: NameWindingVariance, sink: sink}}, nil
}

// Measure implements Measurable.
func (w *WindingVariance) Measure(lat *lattice.Lattice) {
	n := winding.Compute(lat)
	w.horizontal = append(w.horizontal, n.RawHorizontal)
	w.vertical = append(w.vertical, n.RawVertical)
}

// FinalizeBinAndWrite implements Measurable.
func (w *WindingVariance) FinalizeBinAndWrite(ctx context.Context, denominator int) error {
	if err := checkDenominator(denominator); err != nil {
		return err
	}

	return w.emit(ctx, []Record{{Values: []Value{
		{Name: "horizontal", Value: variance(w.horizontal, denominator)},
		{Name: "vertical", Value: variance(w.vertical, denominator)},
	}}})
}

// Clear implements Measurable.
func (w *WindingVariance) Clear() {
	w.horizontal = w.horizontal[:0]
	w.vertical = w.vertical[:0]
}

func variance(xs []int, denominator int) float64 {
	var sum, sq float64
	for _, x := range xs {
		sum += float64(x)
		sq += float64(x) * float64(x)
	}
	den := float64(denominator)
	mean := sum / den

	return sq/den - mean*mean
}

// ClusterSize labels the whole lattice each sample and averages the mean
// cluster size, the cluster count and the largest cluster.
type ClusterSize struct {
	emitter
	meanSize float64
	count    int
	largest  int
}

// NewClusterSize returns a cluster-size estimator.
func NewClusterSize(sink Sink) (*ClusterSize, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	return &ClusterSize{emitter: emitter{name: NameClusterSize, sink: sink}}, nil
}

// Measure implements Measurable.
func (c *ClusterSize) Measure(lat *lattice.Lattice) {
	lab := cluster.Label(lat)
	c.meanSize += lab.MeanSize()
	c.count += lab.Count()
	c.largest += lab.Largest()
}

// FinalizeBinAndWrite implements Measurable.
func (c *ClusterSize) FinalizeBinAndWrite(ctx context.Context, denominator int) error {
	if err := checkDenominator(denominator); err != nil {
		return err
	}
	den := float64(denominator)

	return c.emit(ctx, []Record{{Values: []Value{
		{Name: "mean_size", Value: c.meanSize / den},
		{Name: "clusters", Value: float64(c.count) / den},
		{Name: "largest", Value: float64(c.largest) / den},
	}}})
}

// Clear implements Measurable.
func (c *ClusterSize) Clear() {
	c.meanSize, c.count, c.largest = 0, 0, 0
}
