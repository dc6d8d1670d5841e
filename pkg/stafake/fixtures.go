package stafake

import (
	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/transition"
)

// InverterFixture is a minimal two-stage fixture: a top-level input
// port drives an inverter's A pin across stage 1, and the inverter's Y
// pin drives a top-level output port across stage 2. It is the
// simplest possible path — one combinational gate, no side inputs —
// used by the standalone CLI demo and by tests that only need a path
// to exercise, not a specific sensitization scenario.
type InverterFixture struct {
	Network    *Network
	Path       *Path
	Library    *sta.LibertyLibrary
	Dcalc      *DelayCalc
	Parasitics *Parasitics
	Sim        *LogicSim
	PowerName  string
	GndName    string

	LibSubckt string // vendor .subckt text for the INV cell
}

// NewInverterFixture builds the fixture described above, with a 50ps
// slew at the inverter's input, a 0.02ns input wire delay, a 0.04ns
// output wire delay, and a 1.1V/0V supply.
func NewInverterFixture() *InverterFixture {
	const powerName, gndName = "VDD", "VSS"

	portA := &sta.LibertyPort{Name: "A", Direction: sta.DirInput}
	portY := &sta.LibertyPort{Name: "Y", Direction: sta.DirOutput}
	portY.Function = sta.Not(sta.Port(portA))

	library := &sta.LibertyLibrary{
		Name:           "fake_lib",
		SupplyVoltages: map[string]float64{powerName: 1.1, gndName: 0.0},
		DefaultOperatingConditions: &sta.OperatingConditions{
			Voltage:     1.1,
			Temperature: 25.0,
		},
		Thresholds: [2]sta.LibertyThresholds{
			{Input: 0.5, SlewLower: 0.2, SlewUpper: 0.8}, // rise
			{Input: 0.5, SlewLower: 0.2, SlewUpper: 0.8}, // fall
		},
	}

	cell := &sta.LibertyCell{
		Name:    "INV_X1",
		Library: library,
		Ports:   map[string]*sta.LibertyPort{"A": portA, "Y": portY},
		PgPorts: map[string]*sta.LibertyPgPort{},
	}
	portA.Cell = cell
	portY.Cell = cell
	vddPin := &sta.LibertyPgPort{Name: "VDD", VoltageName: powerName, Cell: cell}
	vssPin := &sta.LibertyPgPort{Name: "VSS", VoltageName: gndName, Cell: cell}
	cell.PgPorts["VDD"] = vddPin
	cell.PgPorts["VSS"] = vssPin
	portY.RelatedPowerPin = vddPin
	portY.RelatedGroundPin = vssPin

	network := NewNetwork()

	inPort := Pin("in")
	aPin := Pin("u1/A")
	yPin := Pin("u1/Y")
	outPort := Pin("out")
	inst := Instance("u1")

	inNet := Net("in")
	outNet := Net("out")

	network.AddPin(inPort, nil, nil, sta.DirOutput, inNet)
	network.MarkTopLevelPort(inPort)
	network.AddPin(aPin, inst, portA, sta.DirInput, inNet)
	network.MarkLoad(aPin)
	network.SetCell(inst, cell)

	network.AddPin(yPin, inst, portY, sta.DirOutput, outNet)
	network.AddPin(outPort, nil, nil, sta.DirInput, outNet)
	network.MarkTopLevelPort(outPort)
	network.MarkLoad(outPort)

	dcalc := NewDelayCalc()
	aVertex := Vertex("u1/A")
	yVertex := Vertex("u1/Y")
	dcalc.SetVertex(aPin, aVertex)
	dcalc.SetVertex(yPin, yVertex)
	dcalc.SetSlew(aVertex, transition.Rise, 0, 0.05e-9)
	dcalc.SetSlew(yVertex, transition.Fall, 0, 0.04e-9)

	parasitics := NewParasitics()
	inNodeA := &ParasiticNode{NodeName: "in/1", Pin: aPin, HasPin: true, GndCap: 1e-15}
	parasitics.Networks[inPort] = &ParasiticNetwork{
		NodeList: []sta.ParasiticNode{inNodeA},
	}
	outNodeOut := &ParasiticNode{NodeName: "out/1", Pin: outPort, HasPin: true, GndCap: 2e-15}
	parasitics.Networks[yPin] = &ParasiticNetwork{
		NodeList: []sta.ParasiticNode{outNodeOut},
	}

	sim := NewLogicSim()

	path := &Path{
		Arrivals: []*sta.PinArrival{
			{Pin: inPort, Transition: transition.Rise, Arrival: 0, Vertex: Vertex("in"), DcalcAP: 0},
			{Pin: aPin, Transition: transition.Rise, Arrival: 0.02e-9, Vertex: aVertex, DcalcAP: 0},
			{Pin: yPin, Transition: transition.Fall, Arrival: 0.08e-9, Vertex: yVertex, DcalcAP: 0},
			{Pin: outPort, Transition: transition.Fall, Arrival: 0.12e-9, Vertex: Vertex("out"), DcalcAP: 0},
		},
		Arcs: []*sta.TimingArc{
			nil,
			{Cell: nil, SlewAxisMin: 0.05e-9},
			{Cell: cell, SlewAxisMin: 0.03e-9},
			{Cell: nil, SlewAxisMin: 0.04e-9},
		},
	}

	libSubckt := ".subckt INV_X1 A Y VDD VSS\n" +
		"* behavioral stub\n" +
		".ends\n"

	return &InverterFixture{
		Network:    network,
		Path:       path,
		Library:    library,
		Dcalc:      dcalc,
		Parasitics: parasitics,
		Sim:        sim,
		PowerName:  powerName,
		GndName:    gndName,
		LibSubckt:  libSubckt,
	}
}

// FanoutFixture is the inverter fixture's path (in -> u1/A -> u1/Y ->
// out) with a second inverter, u2, fanned off the same driver net as a
// side receiver: u2/A sits on net "out" alongside u1/Y and out, but is
// not itself on the path. It exists to exercise the side-receiver
// voltage-source skip logic in pkg/deck's writeGateStage, which an
// inverter path with no fanout can never reach.
type FanoutFixture struct {
	Network    *Network
	Path       *Path
	Library    *sta.LibertyLibrary
	Dcalc      *DelayCalc
	Parasitics *Parasitics
	Sim        *LogicSim
	PowerName  string
	GndName    string

	LibSubckt string // vendor .subckt text for both INV cells
}

// NewFanoutFixture builds the fixture described above.
func NewFanoutFixture() *FanoutFixture {
	const powerName, gndName = "VDD", "VSS"

	portA := &sta.LibertyPort{Name: "A", Direction: sta.DirInput}
	portY := &sta.LibertyPort{Name: "Y", Direction: sta.DirOutput}
	portY.Function = sta.Not(sta.Port(portA))

	library := &sta.LibertyLibrary{
		Name:           "fake_lib",
		SupplyVoltages: map[string]float64{powerName: 1.1, gndName: 0.0},
		DefaultOperatingConditions: &sta.OperatingConditions{
			Voltage:     1.1,
			Temperature: 25.0,
		},
		Thresholds: [2]sta.LibertyThresholds{
			{Input: 0.5, SlewLower: 0.2, SlewUpper: 0.8}, // rise
			{Input: 0.5, SlewLower: 0.2, SlewUpper: 0.8}, // fall
		},
	}

	cell := &sta.LibertyCell{
		Name:    "INV_X1",
		Library: library,
		Ports:   map[string]*sta.LibertyPort{"A": portA, "Y": portY},
		PgPorts: map[string]*sta.LibertyPgPort{},
	}
	portA.Cell = cell
	portY.Cell = cell
	vddPin := &sta.LibertyPgPort{Name: "VDD", VoltageName: powerName, Cell: cell}
	vssPin := &sta.LibertyPgPort{Name: "VSS", VoltageName: gndName, Cell: cell}
	cell.PgPorts["VDD"] = vddPin
	cell.PgPorts["VSS"] = vssPin
	portY.RelatedPowerPin = vddPin
	portY.RelatedGroundPin = vssPin

	network := NewNetwork()

	inPort := Pin("in")
	aPin := Pin("u1/A")
	yPin := Pin("u1/Y")
	outPort := Pin("out")
	sideAPin := Pin("u2/A")
	sideYPin := Pin("u2/Y")
	u1 := Instance("u1")
	u2 := Instance("u2")

	inNet := Net("in")
	outNet := Net("out")
	sideOutNet := Net("u2_out")

	network.AddPin(inPort, nil, nil, sta.DirOutput, inNet)
	network.MarkTopLevelPort(inPort)
	network.AddPin(aPin, u1, portA, sta.DirInput, inNet)
	network.MarkLoad(aPin)
	network.SetCell(u1, cell)

	network.AddPin(yPin, u1, portY, sta.DirOutput, outNet)
	network.AddPin(outPort, nil, nil, sta.DirInput, outNet)
	network.MarkTopLevelPort(outPort)
	network.MarkLoad(outPort)

	// u2 is a second inverter whose input fans off the same net u1/Y
	// drives, but whose own output plays no further part in the path.
	network.AddPin(sideAPin, u2, portA, sta.DirInput, outNet)
	network.MarkLoad(sideAPin)
	network.AddPin(sideYPin, u2, portY, sta.DirOutput, sideOutNet)
	network.SetCell(u2, cell)

	dcalc := NewDelayCalc()
	aVertex := Vertex("u1/A")
	yVertex := Vertex("u1/Y")
	dcalc.SetVertex(aPin, aVertex)
	dcalc.SetVertex(yPin, yVertex)
	dcalc.SetSlew(aVertex, transition.Rise, 0, 0.05e-9)
	dcalc.SetSlew(yVertex, transition.Fall, 0, 0.04e-9)

	parasitics := NewParasitics()
	inNodeA := &ParasiticNode{NodeName: "in/1", Pin: aPin, HasPin: true, GndCap: 1e-15}
	parasitics.Networks[inPort] = &ParasiticNetwork{
		NodeList: []sta.ParasiticNode{inNodeA},
	}

	sim := NewLogicSim()

	path := &Path{
		Arrivals: []*sta.PinArrival{
			{Pin: inPort, Transition: transition.Rise, Arrival: 0, Vertex: Vertex("in"), DcalcAP: 0},
			{Pin: aPin, Transition: transition.Rise, Arrival: 0.02e-9, Vertex: aVertex, DcalcAP: 0},
			{Pin: yPin, Transition: transition.Fall, Arrival: 0.08e-9, Vertex: yVertex, DcalcAP: 0},
			{Pin: outPort, Transition: transition.Fall, Arrival: 0.12e-9, Vertex: Vertex("out"), DcalcAP: 0},
		},
		Arcs: []*sta.TimingArc{
			nil,
			{Cell: nil, SlewAxisMin: 0.05e-9},
			{Cell: cell, SlewAxisMin: 0.03e-9},
			{Cell: nil, SlewAxisMin: 0.04e-9},
		},
	}

	libSubckt := ".subckt INV_X1 A Y VDD VSS\n" +
		"* behavioral stub\n" +
		".ends\n"

	return &FanoutFixture{
		Network:    network,
		Path:       path,
		Library:    library,
		Dcalc:      dcalc,
		Parasitics: parasitics,
		Sim:        sim,
		PowerName:  powerName,
		GndName:    gndName,
		LibSubckt:  libSubckt,
	}
}
