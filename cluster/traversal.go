package cluster

import (
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
)

// Traversal is the resumable depth-first search state. Its exported fields
// are the complete search state and may be inspected between steps; they
// must not be modified while a cluster is in progress.
//
// A Traversal borrows its lattice; the lattice must not change while a
// cluster is being grown.
type Traversal struct {
	// Stack holds one frame of untried directions per site on the path.
	Stack [][]lattice.Direction
	// WalkList holds the directions taken to reach the current site.
	WalkList []lattice.Direction
	// Clustered maps every marked site to its cluster id.
	Clustered map[lattice.Point]int

	Current lattice.BoundPoint
	Start   lattice.BoundPoint

	// ClusterID is the id of the cluster being grown; NextID the next unused.
	ClusterID int
	NextID    int

	// Members lists the sites of the current cluster in discovery order.
	Members []lattice.Point

	// Active is true between a successful Begin and the Done step.
	Active bool
	// Last is the status returned by the most recent Step.
	Last Status

	lat  *lattice.Lattice
	opts Options
}

// NewTraversal returns an idle traversal over lat.
func NewTraversal(lat *lattice.Lattice, opts ...Option) *Traversal {
	if lat == nil {
		fault.Precondition("cluster.NewTraversal", "nil lattice")
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Traversal{
		Clustered: make(map[lattice.Point]int),
		lat:       lat,
		opts:      o,
	}
}

// Begin starts a new cluster at seed. It returns false, leaving the
// traversal idle, if seed is already clustered or has no filled links.
// Calling Begin while a cluster is in progress is a precondition fault.
func (t *Traversal) Begin(seed lattice.Point) bool {
	if t.Active {
		fault.Precondition("cluster.Begin", "cluster already in progress",
			"start", t.Start.Location, "current", t.Current.Location)
	}
	b := t.lat.Bound(seed)
	if _, ok := t.Clustered[b.Location]; ok {
		return false
	}
	dirs := t.lat.VertexAt(b).FilledDirections()
	if len(dirs) == 0 {
		return false
	}

	t.Start, t.Current = b, b
	t.ClusterID = t.NextID
	t.NextID++
	t.Stack = append(t.Stack[:0], dirs)
	t.WalkList = t.WalkList[:0]
	t.Members = t.Members[:0]
	t.Active = true
	t.Last = Exploring
	t.mark(b.Location)

	return true
}

// Step advances the search by one move and returns its status.
func (t *Traversal) Step() Status {
	if !t.Active {
		fault.Precondition("cluster.Step", "no cluster in progress")
	}
	t.Last = t.step()
	if t.opts.OnStep != nil {
		t.opts.OnStep(t.Last, t)
	}

	return t.Last
}

func (t *Traversal) step() Status {
	// 1. Pop the frame of the current site
	if len(t.Stack) == 0 {
		fault.Invariant("cluster.Step", "empty stack while active",
			"current", t.Current.Location, "walk_list", len(t.WalkList), "size", t.lat.Size())
	}
	top := len(t.Stack) - 1
	frame := t.Stack[top]
	t.Stack = t.Stack[:top]

	// 2. Frame exhausted: retreat, or finish at the seed
	if len(frame) == 0 {
		if len(t.WalkList) == 0 {
			if len(t.Stack) != 0 {
				fault.Invariant("cluster.Step", "walk list empty but stack is not",
					"stack", len(t.Stack), "current", t.Current.Location, "size", t.lat.Size())
			}
			t.Active = false

			return Done
		}
		t.retreat()

		return Backtracking
	}

	// 3. Take the last untried direction
	d := frame[len(frame)-1]
	t.Stack = append(t.Stack, frame[:len(frame)-1])
	t.Current = lattice.IncrementLocation(t.Current, d)
	t.WalkList = append(t.WalkList, d)

	// 4. Inspect the reached site
	if id, ok := t.Clustered[t.Current.Location]; ok {
		if id != t.ClusterID {
			fault.Invariant("cluster.Step", "reached a site of another cluster",
				"current", t.Current.Location, "direction", d, "cluster", t.ClusterID,
				"other", id, "size", t.lat.Size())
		}
		t.retreat()

		return Backtracking
	}
	dirs := t.lat.VertexAt(t.Current).FilledDirections()
	if len(dirs) == 0 {
		fault.Invariant("cluster.Step", "reached a site without filled links",
			"current", t.Current.Location, "direction", d, "size", t.lat.Size())
	}
	t.mark(t.Current.Location)
	t.Stack = append(t.Stack, dirs)
	if len(t.Stack) != len(t.WalkList)+1 {
		fault.Invariant("cluster.Step", "stack and walk list out of step",
			"stack", len(t.Stack), "walk_list", len(t.WalkList), "current", t.Current.Location)
	}

	return Exploring
}

// retreat pops the walk list and steps back along it.
func (t *Traversal) retreat() {
	last := len(t.WalkList) - 1
	d := t.WalkList[last]
	t.WalkList = t.WalkList[:last]
	t.Current = lattice.DecrementLocation(t.Current, d)
}

func (t *Traversal) mark(p lattice.Point) {
	t.Clustered[p] = t.ClusterID
	t.Members = append(t.Members, p)
	if t.opts.OnVisit != nil {
		t.opts.OnVisit(p, t.ClusterID)
	}
}

// Run steps the current cluster to completion and returns its sites in
// discovery order. It returns nil when no cluster is in progress.
func (t *Traversal) Run() []lattice.Point {
	if !t.Active {
		return nil
	}
	for t.Step() != Done {
	}
	out := make([]lattice.Point, len(t.Members))
	copy(out, t.Members)

	return out
}

// Find returns the cluster containing seed on lat, or nil when seed has no
// filled links.
func Find(lat *lattice.Lattice, seed lattice.Point, opts ...Option) []lattice.Point {
	t := NewTraversal(lat, opts...)
	if !t.Begin(seed) {
		return nil
	}

	return t.Run()
}
