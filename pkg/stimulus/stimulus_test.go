package stimulus

import (
	"strings"
	"testing"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stafake"
	"github.com/edp1096/pathspice/pkg/stage"
	"github.com/edp1096/pathspice/pkg/transition"
)

func newLibrary() *sta.LibertyLibrary {
	return &sta.LibertyLibrary{
		Thresholds: [2]sta.LibertyThresholds{
			{Input: 0.5, SlewLower: 0.2, SlewUpper: 0.8},
			{Input: 0.5, SlewLower: 0.3, SlewUpper: 0.7},
		},
	}
}

func singleStagePath(in, out stafake.Pin) *stafake.Path {
	return &stafake.Path{Arrivals: []*sta.PinArrival{
		{Pin: in, Transition: transition.Rise, Vertex: stafake.Vertex("vin"), Arrival: 0},
		{Pin: out, Transition: transition.Rise, Vertex: stafake.Vertex("vout"), Arrival: 1e-9},
	}}
}

func TestMaxTimeForDataPathScalesWorstCaseArrival(t *testing.T) {
	network := stafake.NewNetwork()
	in := stafake.Pin("in")
	out := stafake.Pin("out")
	network.AddPin(in, nil, nil, sta.DirOutput, stafake.Net("n1"))
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("n1"))

	path := singleStagePath(in, out)
	stager := stage.New(path)

	dcalc := stafake.NewDelayCalc()
	dcalc.SetSlew(stafake.Vertex("vin"), transition.Rise, 0, 100e-12)
	dcalc.SetSlew(stafake.Vertex("vout"), transition.Rise, 0, 50e-12)

	rails := Rails{PowerVoltage: 1.0, GndVoltage: 0.0}
	s := New(network, dcalc, newLibrary(), rails, path, stager)

	inputSlew, endArrival, endSlew := 100e-12, 1e-9, 50e-12
	want := (inputSlew + endArrival + endSlew*2) * 1.5
	if got := s.MaxTime(); got != want {
		t.Fatalf("MaxTime() = %g, want %g", got, want)
	}
}

func TestMaxTimeFallsBackToTimeUnitScaleWhenSlewUnresolved(t *testing.T) {
	network := stafake.NewNetwork()
	in := stafake.Pin("in")
	out := stafake.Pin("out")
	network.AddPin(in, nil, nil, sta.DirOutput, stafake.Net("n1"))
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("n1"))

	path := singleStagePath(in, out)
	stager := stage.New(path)
	dcalc := stafake.NewDelayCalc() // no slews recorded

	rails := Rails{PowerVoltage: 1.0, GndVoltage: 0.0}
	s := New(network, dcalc, newLibrary(), rails, path, stager)

	if got := s.MaxTime(); got <= 0 {
		t.Fatalf("MaxTime() = %g, want a positive fallback value", got)
	}
}

func TestWriteInputSourceRendersRisingStepFromGndToPower(t *testing.T) {
	network := stafake.NewNetwork()
	in := stafake.Pin("in")
	out := stafake.Pin("out")
	network.AddPin(in, nil, nil, sta.DirOutput, stafake.Net("n1"))
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("n1"))

	path := singleStagePath(in, out)
	stager := stage.New(path)
	dcalc := stafake.NewDelayCalc()
	dcalc.SetSlew(stafake.Vertex("vin"), transition.Rise, 0, 100e-12)

	rails := Rails{PowerVoltage: 1.0, GndVoltage: 0.0}
	s := New(network, dcalc, newLibrary(), rails, path, stager)

	out2 := s.WriteInputSource()
	if !strings.HasPrefix(out2, "v1 in 0 pwl(") {
		t.Fatalf("expected a PWL source on pin in, got:\n%s", out2)
	}
	if !strings.Contains(out2, "0.000") || !strings.Contains(out2, "1.000") {
		t.Fatalf("rising step must bottom at gnd (0.000) and top at power (1.000), got:\n%s", out2)
	}
}

func TestWriteClkWaveformStartsAtFirstCycleOffset(t *testing.T) {
	network := stafake.NewNetwork()
	clkPin := stafake.Pin("clk")
	out := stafake.Pin("out")
	network.AddPin(clkPin, nil, nil, sta.DirOutput, stafake.Net("n1"))
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("n1"))

	clock := &sta.Clock{Name: "clk", Period: 2.0}
	path := &stafake.Path{Arrivals: []*sta.PinArrival{
		{
			Pin: clkPin, Transition: transition.Rise, Vertex: stafake.Vertex("vclk"),
			IsClockPin: true, Clock: clock, ClkEdge: &sta.ClockEdge{Clock: clock, Time: 0},
		},
		{Pin: out, Transition: transition.Rise, Vertex: stafake.Vertex("vout"), Arrival: 3.0},
	}}
	stager := stage.New(path)
	dcalc := stafake.NewDelayCalc()
	dcalc.SetSlew(stafake.Vertex("vclk"), transition.Rise, 0, 0.1)
	dcalc.SetSlew(stafake.Vertex("vclk"), transition.Fall, 0, 0.1)
	dcalc.SetSlew(stafake.Vertex("vout"), transition.Rise, 0, 0.1)

	rails := Rails{PowerVoltage: 1.0, GndVoltage: 0.0}
	s := New(network, dcalc, newLibrary(), rails, path, stager)

	got := s.WriteInputSource()
	if !strings.HasPrefix(got, "v1 clk 0 pwl(") {
		t.Fatalf("expected a PWL clock source on pin clk, got:\n%s", got)
	}
	if strings.Count(got, "\n") < consts_ClkCycleCount()*4 {
		t.Fatalf("expected at least %d edge breakpoints for %d clock cycles, got:\n%s", consts_ClkCycleCount()*4, consts_ClkCycleCount(), got)
	}
}

// consts_ClkCycleCount avoids importing the internal consts package
// directly into the test just to read one number back out.
func consts_ClkCycleCount() int { return 3 }
