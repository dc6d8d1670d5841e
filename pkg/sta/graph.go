package sta

import "github.com/edp1096/pathspice/pkg/transition"

// DcalcAPIndex identifies a delay-calculator analysis point (one corner).
type DcalcAPIndex int

// TimingArc is a cell timing arc. SlewAxisMin is the smallest value on
// any input-transition-time axis of the arc's delay table, pre-resolved
// by the delay calculator — pathspice only ever needs this one collapsed
// value (spec.md §4.2's slew-resolution fallback), never the full table.
type TimingArc struct {
	Cell        *LibertyCell
	SlewAxisMin float64
	// IsRegClkToQ reports whether this arc's generic timing role is
	// register-clock-to-output, collapsing the original TimingRole
	// hierarchy down to the one distinction the sensitizer branches on
	// (spec.md §4.3).
	IsRegClkToQ bool
}

// DelayCalc is the timing-graph / delay-calculator contract: resolved
// slews and the vertex that represents a pin's load-side timing point.
type DelayCalc interface {
	Slew(vertex Vertex, tr transition.RiseFall, apIndex DcalcAPIndex) float64
	PinLoadVertex(pin Pin) Vertex
}
