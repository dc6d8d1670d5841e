package sensitize

import (
	"strings"
	"testing"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stafake"
	"github.com/edp1096/pathspice/pkg/stage"
	"github.com/edp1096/pathspice/pkg/transition"
)

func twoInputCell(name string, fn func(a, b *sta.FuncExpr) *sta.FuncExpr) (*sta.LibertyCell, *sta.LibertyPort, *sta.LibertyPort, *sta.LibertyPort) {
	cell := &sta.LibertyCell{Name: name}
	portA := &sta.LibertyPort{Name: "A", Direction: sta.DirInput, Cell: cell}
	portB := &sta.LibertyPort{Name: "B", Direction: sta.DirInput, Cell: cell}
	portY := &sta.LibertyPort{Name: "Y", Direction: sta.DirOutput, Cell: cell}
	portY.Function = fn(sta.Port(portA), sta.Port(portB))
	cell.Ports = map[string]*sta.LibertyPort{"A": portA, "B": portB, "Y": portY}
	return cell, portA, portB, portY
}

func nand2() (*sta.LibertyCell, *sta.LibertyPort, *sta.LibertyPort, *sta.LibertyPort) {
	return twoInputCell("NAND2_X1", func(a, b *sta.FuncExpr) *sta.FuncExpr {
		return sta.Not(sta.And(a, b))
	})
}

func nor2() (*sta.LibertyCell, *sta.LibertyPort, *sta.LibertyPort, *sta.LibertyPort) {
	return twoInputCell("NOR2_X1", func(a, b *sta.FuncExpr) *sta.FuncExpr {
		return sta.Not(sta.Or(a, b))
	})
}

func twoStageNetwork(cell *sta.LibertyCell) (*stafake.Network, stafake.Pin, stafake.Pin, stafake.Pin, stafake.Pin) {
	network := stafake.NewNetwork()
	in := stafake.Pin("in")
	a := stafake.Pin("u1/A")
	b := stafake.Pin("u1/B")
	y := stafake.Pin("u1/Y")
	network.AddPin(in, nil, nil, sta.DirOutput, stafake.Net("n1"))
	network.AddPin(a, stafake.Instance("u1"), cell.Ports["A"], sta.DirInput, stafake.Net("n1"))
	network.AddPin(b, stafake.Instance("u1"), cell.Ports["B"], sta.DirInput, stafake.Net("nb"))
	network.AddPin(y, stafake.Instance("u1"), cell.Ports["Y"], sta.DirOutput, stafake.Net("n2"))
	network.SetCell(stafake.Instance("u1"), cell)
	return network, in, a, b, y
}

func twoStagePathArrivals(in, a, y, out stafake.Pin) sta.Path {
	return &stafake.Path{Arrivals: []*sta.PinArrival{
		{Pin: in, Transition: transition.Rise},
		{Pin: a, Transition: transition.Rise},
		{Pin: y, Transition: transition.Fall},
		{Pin: out, Transition: transition.Fall},
	}}
}

func TestGateValuesForcesNAND2SideInputHigh(t *testing.T) {
	cell, _, portB, _ := nand2()
	network, in, a, _, y := twoStageNetwork(cell)
	out := stafake.Pin("out")
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("n2"))

	path := twoStagePathArrivals(in, a, y, out)
	stager := stage.New(path)

	sim := stafake.NewLogicSim()
	dcalc := stafake.NewDelayCalc()
	s := New(network, sim, dcalc, nil, Rails{}, &stafake.RecordingLogger{})

	values, clk, _ := s.GateValues(stager, 2)
	if clk != nil {
		t.Fatalf("combinational gate must not produce a clock, got %v", clk)
	}
	if got := values[portB]; got != sta.LogicOne {
		t.Fatalf("NAND2 side input B must be forced to LogicOne to sensitize A, got %v", got)
	}
}

func TestGateValuesForcesNOR2SideInputLow(t *testing.T) {
	cell, _, portB, _ := nor2()
	network, in, a, _, y := twoStageNetwork(cell)
	out := stafake.Pin("out")
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("n2"))

	path := twoStagePathArrivals(in, a, y, out)
	stager := stage.New(path)

	sim := stafake.NewLogicSim()
	dcalc := stafake.NewDelayCalc()
	s := New(network, sim, dcalc, nil, Rails{}, &stafake.RecordingLogger{})

	values, _, _ := s.GateValues(stager, 2)
	if got := values[portB]; got != sta.LogicZero {
		t.Fatalf("NOR2 side input B must be forced to LogicZero to sensitize A, got %v", got)
	}
}

func TestGateValuesRegClkToQForcesDataEdge(t *testing.T) {
	cell := &sta.LibertyCell{Name: "DFF_X1"}
	portD := &sta.LibertyPort{Name: "D", Direction: sta.DirInput, Cell: cell}
	portClk := &sta.LibertyPort{Name: "CLK", Direction: sta.DirInput, Cell: cell}
	portQ := &sta.LibertyPort{Name: "Q", Direction: sta.DirOutput, Cell: cell}
	portIQ := &sta.LibertyPort{Name: "IQ", Cell: cell}
	portQ.Function = sta.Port(portIQ)
	cell.Ports = map[string]*sta.LibertyPort{"D": portD, "CLK": portClk, "Q": portQ}
	cell.Sequentials = []*sta.Sequential{{Output: sta.Port(portIQ), Data: sta.Port(portD)}}

	network := stafake.NewNetwork()
	start := stafake.Pin("start")
	clk := stafake.Pin("u1/CLK")
	q := stafake.Pin("u1/Q")
	out := stafake.Pin("out")
	network.AddPin(start, nil, nil, sta.DirOutput, stafake.Net("n0"))
	network.AddPin(clk, stafake.Instance("u1"), cell.Ports["CLK"], sta.DirInput, stafake.Net("n0"))
	network.AddPin(q, stafake.Instance("u1"), cell.Ports["Q"], sta.DirOutput, stafake.Net("nq"))
	network.AddPin(out, nil, nil, sta.DirInput, stafake.Net("nq"))
	network.SetCell(stafake.Instance("u1"), cell)

	// A 4-entry path puts the clock-to-Q arc in stage 2: index1 (clk) is
	// stage 2's gate input, index2 (Q) is its driver, fed by Arcs[2].
	clock := &sta.Clock{Name: "clk", Period: 1.0}
	path := &stafake.Path{
		Arrivals: []*sta.PinArrival{
			{Pin: start, Transition: transition.Rise},
			{Pin: clk, Transition: transition.Rise, Clock: clock, IsClockPin: true},
			{Pin: q, Transition: transition.Rise, Clock: clock},
			{Pin: out, Transition: transition.Rise},
		},
		Arcs: []*sta.TimingArc{nil, nil, {IsRegClkToQ: true}, nil},
	}
	stager := stage.New(path)

	sim := stafake.NewLogicSim()
	dcalc := stafake.NewDelayCalc()
	s := New(network, sim, dcalc, nil, Rails{}, &stafake.RecordingLogger{})

	values, retClk, _ := s.GateValues(stager, 2)
	if retClk != clock {
		t.Fatalf("register clock-to-Q must return the driving clock, got %v", retClk)
	}
	if got := values[portD]; got != sta.LogicRise {
		t.Fatalf("positive-unate D input on a rising Q must be forced to LogicRise, got %v", got)
	}
}

func TestWritePortSourcesRendersPgAndForcedValueCards(t *testing.T) {
	cell, _, portB, _ := nand2()
	cell.PgPorts = map[string]*sta.LibertyPgPort{
		"VDD": {Name: "VDD", VoltageName: "VDD", Cell: cell},
		"VSS": {Name: "VSS", VoltageName: "VSS", Cell: cell},
	}
	cell.Library = &sta.LibertyLibrary{SupplyVoltages: map[string]float64{"VDD": 1.0, "VSS": 0.0}}

	network, _, a, b, _ := twoStageNetwork(cell)
	sim := stafake.NewLogicSim()
	sim.Values[b] = sta.LogicOne
	dcalc := stafake.NewDelayCalc()

	rails := Rails{PowerName: "VDD", GndName: "VSS", PowerVoltage: 1.0, GndVoltage: 0.0}
	s := New(network, sim, dcalc, nil, rails, &stafake.RecordingLogger{})

	idx := 0
	values := PortValues{portB: sta.LogicOne}
	out, err := s.WritePortSources(a, "A", "Y", &idx, values, nil, 0, []string{"A", "B", "Y", "VDD", "VSS"})
	if err != nil {
		t.Fatalf("WritePortSources() error = %v", err)
	}
	if !strings.Contains(out, "u1/VDD 0 1.000") {
		t.Fatalf("expected VDD pg supply card, got:\n%s", out)
	}
	if !strings.Contains(out, "u1/VSS 0 0.000") {
		t.Fatalf("expected VSS pg supply card, got:\n%s", out)
	}
	if !strings.Contains(out, "u1/B 0 1.000") {
		t.Fatalf("expected forced-high side input B card, got:\n%s", out)
	}
	if strings.Contains(out, "u1/A ") || strings.Contains(out, "u1/Y ") {
		t.Fatalf("skip1/skip2 (the path's own gate-input and driver ports) must not get a source card, got:\n%s", out)
	}
}
