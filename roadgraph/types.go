package roadgraph

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/roadpath/geo"
)

// Sentinel errors for graph construction and lookup.
var (
	// ErrInvalidNode indicates a node ID outside [1, NodeCount()].
	ErrInvalidNode = errors.New("roadgraph: invalid node")

	// ErrNegativeWeight indicates an arc with a negative weight.
	ErrNegativeWeight = errors.New("roadgraph: negative arc weight")

	// ErrBadNodeCount indicates a negative node count passed to NewBuilder.
	ErrBadNodeCount = errors.New("roadgraph: node count must be non-negative")

	// ErrBuilderUsed indicates a Builder was modified or built after Build.
	ErrBuilderUsed = errors.New("roadgraph: builder already built")

	// ErrMapNotFound indicates that the .gr or .co file of a map is missing.
	ErrMapNotFound = errors.New("roadgraph: map files not found")

	// ErrMalformedLine indicates a DIMACS record that could not be parsed.
	ErrMalformedLine = errors.New("roadgraph: malformed line")

	// ErrMissingCoords indicates a loaded map where some nodes have no "v" record.
	ErrMissingCoords = errors.New("roadgraph: nodes without coordinates")

	// ErrUnknownPolicy indicates an unrecognised duplicate-arc policy name.
	ErrUnknownPolicy = errors.New("roadgraph: unknown duplicate policy")
)

// NodeID identifies a node. IDs are dense and 1-based; 0 is never valid.
type NodeID int32

// Coord is the fixed-point coordinate of a node.
type Coord = geo.Coord

// Arc is a directed, weighted connection owned by its source node.
type Arc struct {
	To     NodeID // target node
	Weight int64  // length in meters, ≥ 0
}

// DuplicatePolicy decides which arc survives when the same ordered pair is
// added more than once.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the arc added last.
	DuplicateLastWins DuplicatePolicy = iota

	// DuplicateMinWins keeps the arc with the smallest weight.
	DuplicateMinWins
)

// String returns the configuration name of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last"
	case DuplicateMinWins:
		return "min"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParseDuplicatePolicy maps "last" / "min" (case-insensitive) to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last", "last-wins":
		return DuplicateLastWins, nil
	case "min", "min-wins":
		return DuplicateMinWins, nil
	default:
		return DuplicateLastWins, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Stats is a snapshot of the graph's size and data-quality counters.
type Stats struct {
	Nodes         int   // NodeCount()
	Arcs          int   // stored arcs after duplicate collapse
	ArcsAdded     int   // arcs handed to the builder, duplicates included
	DuplicateArcs int   // ArcsAdded - Arcs
	MissingCoords int   // nodes that never received a coordinate
	MaxOutDegree  int   // largest number of outgoing arcs on one node
	MinWeight     int64 // smallest arc weight (0 when there are no arcs)
	MaxWeight     int64 // largest arc weight
	Policy        DuplicatePolicy
}

// Option configures a Builder or the DIMACS loader.
type Option func(*options)

type options struct {
	policy DuplicatePolicy
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		policy: DuplicateLastWins,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithDuplicatePolicy selects how repeated arcs are collapsed.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger routes load progress to l. A nil logger keeps the default
// (discard) logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
