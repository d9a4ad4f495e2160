package update

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilLattice is returned when New is given a nil lattice.
	ErrNilLattice = errors.New("update: lattice is nil")

	// ErrInvalidTuning indicates a tuning weight that is not positive and finite.
	ErrInvalidTuning = errors.New("update: tuning must be positive and finite")

	// ErrUnknownKind indicates an update kind other than local or walk.
	ErrUnknownKind = errors.New("update: unknown update kind")
)

// Kind selects the move generator.
type Kind uint8

const (
	// Local raises one plaquette per move.
	Local Kind = iota
	// Walk raises a random closed loop per move.
	Walk
)

// String returns "local" or "walk".
func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Walk:
		return "walk"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String; matching ignores case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return Local, nil
	case "walk":
		return Walk, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// Result describes one proposed move.
type Result struct {
	Kind       Kind
	Start      [2]int // x, y of the move's start site
	Steps      int    // edges raised
	LinkChange int    // sum of per-edge classifications
	Before     int    // filled links before the move
	After      int    // filled links after accept or rollback
	Accepted   bool
}

// Stats accumulates move counts over an Updater's lifetime.
type Stats struct {
	Proposed uint64
	Accepted uint64
	Rejected uint64
	Steps    uint64
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Proposed: s.Proposed + o.Proposed,
		Accepted: s.Accepted + o.Accepted,
		Rejected: s.Rejected + o.Rejected,
		Steps:    s.Steps + o.Steps,
	}
}

// AcceptanceRate returns Accepted/Proposed, or 0 before the first move.
func (s Stats) AcceptanceRate() float64 {
	if s.Proposed == 0 {
		return 0
	}

	return float64(s.Accepted) / float64(s.Proposed)
}
