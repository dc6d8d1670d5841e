// Package stimulus synthesizes the single piecewise-linear voltage
// source that drives the first stage's input pin: a combinational step
// for a data path, or a periodic clock waveform for a path launched
// from a clock pin. It also answers the slew and .tran end-time
// queries pkg/sensitize and pkg/deck share, since both depend on the
// same input-stage slew and path-length arithmetic the original
// generator computed from instance state. Grounded on maxTime,
// writeInputSource, writeStepVoltSource, writeClkWaveform,
// writeWaveformEdge and findSlew in
// original_source/search/WritePathSpice.cc.
package stimulus

import (
	"github.com/edp1096/pathspice/internal/consts"
	"github.com/edp1096/pathspice/pkg/device"
	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stage"
	"github.com/edp1096/pathspice/pkg/transition"
)

// Rails holds the resolved power/ground voltages a deck writes its
// sources against.
type Rails struct {
	PowerVoltage float64
	GndVoltage   float64
}

// Synthesizer builds the input stimulus source for one path. It is
// built fresh per deck invocation, holding the expanded path and its
// Stager the way the original WritePathSpice instance held path_.
type Synthesizer struct {
	network sta.Network
	dcalc   sta.DelayCalc
	library *sta.LibertyLibrary
	rails   Rails
	path    sta.Path
	stager  *stage.Stager
}

func New(network sta.Network, dcalc sta.DelayCalc, library *sta.LibertyLibrary, rails Rails, path sta.Path, stager *stage.Stager) *Synthesizer {
	return &Synthesizer{network: network, dcalc: dcalc, library: library, rails: rails, path: path, stager: stager}
}

// Slew resolves a vertex's slew for a transition: the delay
// calculator's reported value, falling back to the next arc's minimum
// input-transition-time axis value, and finally to a non-zero time-unit
// floor so no PWL edge ever collapses to zero width.
func (s *Synthesizer) Slew(vertex sta.Vertex, tr transition.RiseFall, apIndex sta.DcalcAPIndex, nextArc *sta.TimingArc) float64 {
	slew := s.dcalc.Slew(vertex, tr, apIndex)
	if slew == 0.0 && nextArc != nil {
		slew = nextArc.SlewAxisMin
	}
	if slew == 0.0 {
		slew = consts.TimeUnitScale
	}
	return slew
}

func (s *Synthesizer) pathSlew(p *sta.PinArrival, nextArc *sta.TimingArc) float64 {
	return s.Slew(p.Vertex, p.Transition, p.DcalcAP, nextArc)
}

// MaxTime is the .tran end time: for a clock-launched path, N cycles
// plus the waveform's initial offset; for a data path, 1.5x the
// worst-case arrival plus the input and end slews.
func (s *Synthesizer) MaxTime() float64 {
	inputPath := s.stager.DriverPath(s.stager.First())
	nextArc := s.stager.GateArc(s.stager.First() + 1)
	inputSlew := s.pathSlew(inputPath, nextArc)

	if inputPath.IsClockPin {
		period := inputPath.Clock.Period
		firstEdgeOffset := period / 10
		return period*consts.ClkCycleCount + firstEdgeOffset
	}

	end := sta.End(s.path)
	endSlew := s.pathSlew(end, nil)
	return (inputSlew + end.Arrival + endSlew*2) * 1.5
}

// WriteInputSource renders the first stage's input stimulus: a clock
// waveform if the launch pin is a clock pin, otherwise a combinational
// step.
func (s *Synthesizer) WriteInputSource() string {
	inputPath := s.stager.DriverPath(s.stager.First())
	if inputPath.IsClockPin {
		return s.writeClkWaveform()
	}
	return s.writeInputWaveform()
}

func (s *Synthesizer) writeInputWaveform() string {
	input := s.stager.First()
	inputPath := s.stager.DriverPath(input)
	nextArc := s.stager.GateArc(input + 1)
	slew0 := s.pathSlew(inputPath, nextArc)
	time0 := slew0 // arbitrary offset
	drvrPin := s.stager.DriverPin(input)
	voltIndex := 1
	return s.WriteStepVoltSource(drvrPin, inputPath.Transition, slew0, time0, &voltIndex)
}

// WriteStepVoltSource renders a single PWL step source on pin: off-rail
// from t=0, crossing the library threshold at time with the given
// slew, then on-rail until the deck's .tran end time. Exported for
// pkg/sensitize's clocked side-input edges, which share this same
// shape.
func (s *Synthesizer) WriteStepVoltSource(pin sta.Pin, tr transition.RiseFall, slew, time float64, voltIndex *int) string {
	volt0, volt1 := s.rails.GndVoltage, s.rails.PowerVoltage
	if tr == transition.Fall {
		volt0, volt1 = s.rails.PowerVoltage, s.rails.GndVoltage
	}

	times := []float64{0.0}
	values := []float64{volt0}
	t0, t1 := s.waveformEdge(tr, time, slew)
	times = append(times, t0, t1)
	values = append(values, volt0, volt1)
	times = append(times, s.MaxTime())
	values = append(values, volt1)

	v := device.NewPWLVoltageSource(*voltIndex, s.network.PathName(pin), times, values)
	*voltIndex++
	return v.Spice()
}

func (s *Synthesizer) writeClkWaveform() string {
	input := s.stager.First()
	inputPath := s.stager.DriverPath(input)
	nextArc := s.stager.GateArc(input + 1)
	clkEdge := inputPath.ClkEdge
	clk := clkEdge.Clock
	period := clk.Period
	timeOffset := period / 10

	tr0, tr1 := transition.All[0], transition.All[1]
	volt0 := s.rails.GndVoltage
	if clkEdge.Time >= period {
		tr0 = tr0.Opposite()
		tr1 = tr1.Opposite()
		volt0 = s.rails.PowerVoltage
	}

	slew0 := s.Slew(inputPath.Vertex, tr0, inputPath.DcalcAP, nextArc)
	slew1 := s.Slew(inputPath.Vertex, tr1, inputPath.DcalcAP, nextArc)

	times := []float64{0.0}
	values := []float64{volt0}
	for cycle := 0; cycle < consts.ClkCycleCount; cycle++ {
		time0 := timeOffset + float64(cycle)*period
		time1 := time0 + period/2.0

		t0a, t0b := s.waveformEdge(tr0, time0, slew0)
		t1a, t1b := s.waveformEdge(tr1, time1, slew1)
		edgeVolt0, edgeVolt1 := s.railsFor(tr0)
		edgeVolt2, edgeVolt3 := s.railsFor(tr1)
		times = append(times, t0a, t0b, t1a, t1b)
		values = append(values, edgeVolt0, edgeVolt1, edgeVolt2, edgeVolt3)
	}
	times = append(times, s.MaxTime())
	values = append(values, volt0)

	drvrPin := s.stager.DriverPin(input)
	v := device.NewPWLVoltageSource(1, s.network.PathName(drvrPin), times, values)
	return v.Spice()
}

func (s *Synthesizer) railsFor(tr transition.RiseFall) (float64, float64) {
	if tr == transition.Rise {
		return s.rails.GndVoltage, s.rails.PowerVoltage
	}
	return s.rails.PowerVoltage, s.rails.GndVoltage
}

// waveformEdge returns the (time0, time1) pair of a PWL rise/fall edge
// that crosses the library input threshold at time, spread across slew
// scaled by the library's slew thresholds.
func (s *Synthesizer) waveformEdge(tr transition.RiseFall, time, slew float64) (float64, float64) {
	threshold := s.library.InputThreshold(tr)
	lower := s.library.SlewLowerThreshold(tr)
	upper := s.library.SlewUpperThreshold(tr)
	dt := slew / (upper - lower)
	time0 := time - dt*threshold
	time1 := time0 + dt
	return time0, time1
}
