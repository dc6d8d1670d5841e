package sta

import "github.com/edp1096/pathspice/pkg/transition"

// Clock is a named periodic waveform.
type Clock struct {
	Name   string
	Period float64
}

// ClockEdge is a specific edge of a clock waveform; Time is its offset
// within one period, used to tell which half of the cycle it falls in.
type ClockEdge struct {
	Clock *Clock
	Time  float64
}

// PinArrival is one pin arrival in an expanded timing path: a pin, the
// transition arriving on it, its arrival time, and (if it is a clock
// pin) the clock and edge that produced it.
type PinArrival struct {
	Pin         Pin
	Transition  transition.RiseFall
	Arrival     float64
	IsClockPin  bool
	Clock       *Clock
	ClkEdge     *ClockEdge
	DcalcAP     DcalcAPIndex
	ParasiticAP AnalysisPoint
	Vertex      Vertex
}

// Path is the expanded timing path: a random-access sequence of pin
// arrivals alternating gate-output and net-load events, plus the arc
// that produced each arrival. Index 0 is the starting input pin; the
// last index is the path endpoint. This merges the "Path" and
// "PathExpanded" roles of spec.md §3/§6 into a single contract, since
// pathspice only ever needs random access into the already-expanded
// sequence.
type Path interface {
	Len() int
	At(i int) *PinArrival
	// PrevArc returns the timing arc that produced At(i), or nil for i
	// at or before the start of the path.
	PrevArc(i int) *TimingArc
	StartPath() *PinArrival
}

// End returns the last pin arrival of the path (the path's reporting
// endpoint).
func End(p Path) *PinArrival {
	return p.At(p.Len() - 1)
}
