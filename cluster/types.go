package cluster

import (
	"fmt"

	"github.com/katalvlaran/stringnet/lattice"
)

// Status is the outcome of one Step.
type Status uint8

const (
	// Exploring means the last step reached and marked a new site.
	Exploring Status = iota
	// Backtracking means the last step retreated along the walk list.
	Backtracking
	// Done means the cluster is fully explored.
	Done
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Exploring:
		return "Exploring"
	case Backtracking:
		return "Backtracking"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Option configures a Traversal.
type Option func(*Options)

// Options holds traversal hooks.
type Options struct {
	// OnVisit, if non-nil, is called when a site is marked with a cluster id,
	// including the seed.
	OnVisit func(p lattice.Point, id int)

	// OnStep, if non-nil, is called after every Step with its status.
	OnStep func(s Status, t *Traversal)
}

// DefaultOptions returns Options without hooks.
func DefaultOptions() Options {
	return Options{}
}

// WithOnVisit registers a hook called when a site joins a cluster.
func WithOnVisit(fn func(p lattice.Point, id int)) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnStep registers a hook called after every Step.
func WithOnStep(fn func(s Status, t *Traversal)) Option {
	return func(o *Options) { o.OnStep = fn }
}
