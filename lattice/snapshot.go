package lattice

import (
	"github.com/katalvlaran/stringnet/fault"
)

// Snapshot is a full copy of a lattice's mutable state. A zero Snapshot can be
// reused across SnapshotInto calls without reallocating.
type Snapshot struct {
	size     Point
	vertices []Vertex
	filled   int
}

// FilledLinks returns the filled-link count captured in the snapshot.
func (s *Snapshot) FilledLinks() int {
	return s.filled
}

// Snapshot captures the current state in a fresh Snapshot.
func (l *Lattice) Snapshot() *Snapshot {
	s := &Snapshot{}
	l.SnapshotInto(s)

	return s
}

// SnapshotInto captures the current state into s, reusing its buffer.
// Complexity: O(Lx·Ly).
func (l *Lattice) SnapshotInto(s *Snapshot) {
	if cap(s.vertices) < len(l.vertices) {
		s.vertices = make([]Vertex, len(l.vertices))
	}
	s.vertices = s.vertices[:len(l.vertices)]
	copy(s.vertices, l.vertices)
	s.size = l.size
	s.filled = l.filled
}

// Restore rewinds the lattice to s. Restoring a snapshot of a different size
// is a precondition fault.
// Complexity: O(Lx·Ly).
func (l *Lattice) Restore(s *Snapshot) {
	if s.size != l.size || len(s.vertices) != len(l.vertices) {
		fault.Precondition("lattice.Restore", "snapshot size mismatch",
			"snapshot", s.size, "size", l.size)
	}
	copy(l.vertices, s.vertices)
	l.filled = s.filled
}

// Clone returns an independent deep copy.
func (l *Lattice) Clone() *Lattice {
	c := &Lattice{
		size:     l.size,
		vertices: make([]Vertex, len(l.vertices)),
		filled:   l.filled,
	}
	copy(c.vertices, l.vertices)

	return c
}
