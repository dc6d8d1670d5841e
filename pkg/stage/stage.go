// Package stage decomposes an expanded timing path into the contiguous
// stages pathspice emits one SPICE subcircuit per. Stage 1 is the input
// stage (input port driving a load); every later stage is a gate input,
// its driver output, and the wire load that output drives.
//
//	           stage
//	      |---------------|
//	        |\             |\
//	--------| >---/\/\/----| >---
//	 gate   |/ drvr    load|/
//	 input
package stage

import (
	"strconv"

	"github.com/edp1096/pathspice/pkg/sta"
)

// Index is a 1-based stage number, s in [1..k].
type Index int

// Stager maps path indices to stage accessors. It holds no state beyond
// the path reference it was built from.
type Stager struct {
	path sta.Path
}

// New derives the stage count from the expanded path length
// (k = (len(P)+1)/2) and returns a Stager for it.
func New(path sta.Path) *Stager {
	return &Stager{path: path}
}

// First is always stage 1.
func (s *Stager) First() Index { return 1 }

// Last is the final stage index k.
func (s *Stager) Last() Index {
	return Index((s.path.Len() + 1) / 2)
}

// Name is the SPICE subcircuit name for a stage, "stage<s>".
func (s *Stager) Name(stage Index) string {
	return "stage" + strconv.Itoa(int(stage))
}

func (s *Stager) gateInputIndex(stage Index) int { return int(stage)*2 - 3 }
func (s *Stager) drvrIndex(stage Index) int      { return int(stage)*2 - 2 }
func (s *Stager) loadIndex(stage Index) int      { return int(stage)*2 - 1 }

// GateInputPath is the gate-input pin arrival for stage, or nil for
// stage 1 (which has no gate input).
func (s *Stager) GateInputPath(stage Index) *sta.PinArrival {
	i := s.gateInputIndex(stage)
	if i < 0 {
		return nil
	}
	return s.path.At(i)
}

// DriverPath is the driver pin arrival for stage.
func (s *Stager) DriverPath(stage Index) *sta.PinArrival {
	return s.path.At(s.drvrIndex(stage))
}

// LoadPath is the load pin arrival for stage.
func (s *Stager) LoadPath(stage Index) *sta.PinArrival {
	return s.path.At(s.loadIndex(stage))
}

// GateArc is the timing arc feeding the driver pin of stage, or nil for
// stage 1.
func (s *Stager) GateArc(stage Index) *sta.TimingArc {
	i := s.drvrIndex(stage)
	if i < 0 {
		return nil
	}
	return s.path.PrevArc(i)
}

// WireArc is the timing arc feeding the load pin of stage.
func (s *Stager) WireArc(stage Index) *sta.TimingArc {
	return s.path.PrevArc(s.loadIndex(stage))
}

// GateInputPin, DriverPin and LoadPin are convenience accessors over the
// corresponding PinArrival's Pin field. GateInputPin returns false for
// stage 1.
func (s *Stager) GateInputPin(stage Index) (sta.Pin, bool) {
	p := s.GateInputPath(stage)
	if p == nil {
		return nil, false
	}
	return p.Pin, true
}

func (s *Stager) DriverPin(stage Index) sta.Pin {
	return s.DriverPath(stage).Pin
}

func (s *Stager) LoadPin(stage Index) sta.Pin {
	return s.LoadPath(stage).Pin
}
