package graph

import (
	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

// EventKind identifies a point in a traversal.
type EventKind uint8

const (
	EventNodeVisited EventKind = iota + 1
	EventEdgeFollowed
	EventRootFound
)

func (k EventKind) String() string {
	switch k {
	case EventNodeVisited:
		return "node_visited"
	case EventEdgeFollowed:
		return "edge_followed"
	case EventRootFound:
		return "root_found"
	default:
		return "unknown"
	}
}

const (
	OpAncestors   = "ancestors"
	OpDescendants = "descendants"
	OpParents     = "parents"
)

// Event describes one traversal step. For EventEdgeFollowed, From is the node
// being expanded and Node is the one reached.
type Event struct {
	Kind       EventKind
	Op         string
	Node       string
	From       string
	Membership indexing.MembershipType
}

// Tracer receives traversal events. Implementations must be safe for
// concurrent use when one Engine serves concurrent queries.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(Event)

func (f TracerFunc) Trace(ev Event) { f(ev) }

type logTracer struct {
	logger zerolog.Logger
}

// NewLogTracer writes visits and edges at Trace level and root discovery at Debug.
func NewLogTracer(logger zerolog.Logger) Tracer {
	return &logTracer{logger: logger}
}

func (t *logTracer) Trace(ev Event) {
	var e *zerolog.Event
	if ev.Kind == EventRootFound {
		e = t.logger.Debug()
	} else {
		e = t.logger.Trace()
	}
	e = e.Str("op", ev.Op).Str("event", ev.Kind.String()).Str("node", ev.Node)
	if ev.Kind == EventEdgeFollowed {
		e = e.Str("from", ev.From).Stringer("membership", ev.Membership)
	}
	e.Msg("traversal")
}
