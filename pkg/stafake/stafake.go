// Package stafake provides in-memory implementations of every
// collaborator contract declared in pkg/sta, for use by tests and by
// the standalone CLI — no real static-timing-analysis engine ships in
// this module. Modeled on the dedicated, assertion-library-free test
// support package db47h-hwsim keeps at hwtest: plain structs, builder
// methods, bare *testing.T in the _test.go files that consume this
// package.
package stafake

import (
	"fmt"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/transition"
)

// Pin, Instance, Net and Vertex are opaque name-based handles
// satisfying the fmt.Stringer contracts pkg/sta declares for them.
type Pin string

func (p Pin) String() string { return string(p) }

type Instance string

func (i Instance) String() string { return string(i) }

type Net string

func (n Net) String() string { return string(n) }

type Vertex string

func (v Vertex) String() string { return string(v) }

type pinInfo struct {
	instance     sta.Instance
	port         *sta.LibertyPort
	direction    sta.PortDirection
	net          sta.Net
	hierarchical bool
	topLevel     bool
	load         bool
}

type instanceInfo struct {
	cell *sta.LibertyCell
	pins map[string]sta.Pin
}

// Network is an in-memory sta.Network: every pin, instance and net
// must be registered with AddPin/SetCell before use.
type Network struct {
	pins      map[sta.Pin]*pinInfo
	instances map[sta.Instance]*instanceInfo
	cells     map[string]*sta.LibertyCell
	connected map[sta.Net][]sta.Pin
}

func NewNetwork() *Network {
	return &Network{
		pins:      map[sta.Pin]*pinInfo{},
		instances: map[sta.Instance]*instanceInfo{},
		cells:     map[string]*sta.LibertyCell{},
		connected: map[sta.Net][]sta.Pin{},
	}
}

// AddPin registers pin on inst (may be nil for a top-level port),
// driven by port, in the given direction, on net.
func (n *Network) AddPin(pin sta.Pin, inst sta.Instance, port *sta.LibertyPort, dir sta.PortDirection, net sta.Net) {
	n.pins[pin] = &pinInfo{instance: inst, port: port, direction: dir, net: net}
	if inst != nil {
		ii := n.instanceInfo(inst)
		if port != nil {
			ii.pins[port.Name] = pin
		}
	}
	if net != nil {
		n.connected[net] = append(n.connected[net], pin)
	}
}

func (n *Network) instanceInfo(inst sta.Instance) *instanceInfo {
	ii, ok := n.instances[inst]
	if !ok {
		ii = &instanceInfo{pins: map[string]sta.Pin{}}
		n.instances[inst] = ii
	}
	return ii
}

// SetCell records inst's liberty cell, also indexing it by name for
// FindLibertyCell.
func (n *Network) SetCell(inst sta.Instance, cell *sta.LibertyCell) {
	n.instanceInfo(inst).cell = cell
	if cell != nil {
		n.cells[cell.Name] = cell
	}
}

// MarkHierarchical, MarkTopLevelPort and MarkLoad flag a registered
// pin's connectivity classification.
func (n *Network) MarkHierarchical(pin sta.Pin) { n.pins[pin].hierarchical = true }
func (n *Network) MarkTopLevelPort(pin sta.Pin) { n.pins[pin].topLevel = true }
func (n *Network) MarkLoad(pin sta.Pin)         { n.pins[pin].load = true }

func (n *Network) PathName(entity fmt.Stringer) string { return entity.String() }

func (n *Network) Instance(pin sta.Pin) sta.Instance { return n.pins[pin].instance }

func (n *Network) LibertyPort(pin sta.Pin) *sta.LibertyPort { return n.pins[pin].port }

func (n *Network) LibertyCell(inst sta.Instance) *sta.LibertyCell {
	ii, ok := n.instances[inst]
	if !ok {
		return nil
	}
	return ii.cell
}

func (n *Network) FindLibertyCell(name string) *sta.LibertyCell { return n.cells[name] }

func (n *Network) Direction(pin sta.Pin) sta.PortDirection { return n.pins[pin].direction }

func (n *Network) IsHierarchical(pin sta.Pin) bool { return n.pins[pin].hierarchical }

func (n *Network) IsTopLevelPort(pin sta.Pin) bool { return n.pins[pin].topLevel }

func (n *Network) IsLoad(pin sta.Pin) bool { return n.pins[pin].load }

func (n *Network) FindPin(inst sta.Instance, portName string) (sta.Pin, bool) {
	ii, ok := n.instances[inst]
	if !ok {
		return nil, false
	}
	pin, ok := ii.pins[portName]
	return pin, ok
}

func (n *Network) Net(pin sta.Pin) sta.Net { return n.pins[pin].net }

func (n *Network) ConnectedPins(pin sta.Pin) []sta.Pin {
	net := n.pins[pin].net
	if net == nil {
		return nil
	}
	var out []sta.Pin
	for _, p := range n.connected[net] {
		if p != pin {
			out = append(out, p)
		}
	}
	return out
}

// slewKey identifies one DelayCalc.Slew lookup.
type slewKey struct {
	vertex sta.Vertex
	tr     transition.RiseFall
	ap     sta.DcalcAPIndex
}

// DelayCalc is an in-memory sta.DelayCalc backed by lookup tables.
type DelayCalc struct {
	Slews    map[slewKey]float64
	Vertices map[sta.Pin]sta.Vertex
}

func NewDelayCalc() *DelayCalc {
	return &DelayCalc{Slews: map[slewKey]float64{}, Vertices: map[sta.Pin]sta.Vertex{}}
}

// SetSlew records the slew DelayCalc.Slew returns for vertex/tr/apIndex.
func (d *DelayCalc) SetSlew(vertex sta.Vertex, tr transition.RiseFall, apIndex sta.DcalcAPIndex, value float64) {
	d.Slews[slewKey{vertex, tr, apIndex}] = value
}

// SetVertex records the load vertex PinLoadVertex returns for pin.
func (d *DelayCalc) SetVertex(pin sta.Pin, vertex sta.Vertex) { d.Vertices[pin] = vertex }

func (d *DelayCalc) Slew(vertex sta.Vertex, tr transition.RiseFall, apIndex sta.DcalcAPIndex) float64 {
	return d.Slews[slewKey{vertex, tr, apIndex}]
}

func (d *DelayCalc) PinLoadVertex(pin sta.Pin) sta.Vertex { return d.Vertices[pin] }

// LogicSim is an in-memory sta.LogicSim; pins with no recorded value
// report LogicUnknown, matching a real simulator's default for an
// unconstrained pin.
type LogicSim struct {
	Values map[sta.Pin]sta.LogicValue
}

func NewLogicSim() *LogicSim { return &LogicSim{Values: map[sta.Pin]sta.LogicValue{}} }

func (l *LogicSim) LogicValue(pin sta.Pin) sta.LogicValue {
	if v, ok := l.Values[pin]; ok {
		return v
	}
	return sta.LogicUnknown
}

// ParasiticNode is an in-memory sta.ParasiticNode.
type ParasiticNode struct {
	NodeName string
	Pin      sta.Pin
	HasPin   bool
	GndCap   float64
}

func (n *ParasiticNode) Name() string { return n.NodeName }

func (n *ParasiticNode) ConnectionPin() (sta.Pin, bool) { return n.Pin, n.HasPin }

func (n *ParasiticNode) NodeGndCap(ap sta.AnalysisPoint) float64 { return n.GndCap }

// ParasiticDevice is an in-memory sta.ParasiticDevice: a resistor when
// Resistor is set, a coupling capacitor when Coupling is set.
type ParasiticDevice struct {
	Resistor bool
	Coupling bool
	Val      float64
	N1, N2   *ParasiticNode
}

func (d *ParasiticDevice) IsResistor() bool                   { return d.Resistor }
func (d *ParasiticDevice) IsCouplingCap() bool                { return d.Coupling }
func (d *ParasiticDevice) Value(ap sta.AnalysisPoint) float64 { return d.Val }
func (d *ParasiticDevice) Node1() sta.ParasiticNode           { return d.N1 }
func (d *ParasiticDevice) Node2() sta.ParasiticNode {
	if d.N2 == nil {
		return nil
	}
	return d.N2
}

// ParasiticNetwork is an in-memory sta.ParasiticNetwork.
type ParasiticNetwork struct {
	DeviceList []sta.ParasiticDevice
	NodeList   []sta.ParasiticNode
}

func (n *ParasiticNetwork) Devices() []sta.ParasiticDevice { return n.DeviceList }
func (n *ParasiticNetwork) Nodes() []sta.ParasiticNode     { return n.NodeList }

// Parasitics is an in-memory sta.Parasitics, keyed by driver pin only
// (analysis point is ignored, since fixtures only ever need one corner).
type Parasitics struct {
	Networks map[sta.Pin]*ParasiticNetwork
}

func NewParasitics() *Parasitics { return &Parasitics{Networks: map[sta.Pin]*ParasiticNetwork{}} }

func (p *Parasitics) FindNetwork(pin sta.Pin, ap sta.AnalysisPoint) (sta.ParasiticNetwork, bool) {
	n, ok := p.Networks[pin]
	if !ok {
		return nil, false
	}
	return n, true
}

// Path is an in-memory sta.Path: a fixed slice of pin arrivals plus
// the arc that produced each one (Arcs[0] is always nil/unused).
type Path struct {
	Arrivals []*sta.PinArrival
	Arcs     []*sta.TimingArc
}

func (p *Path) Len() int { return len(p.Arrivals) }

func (p *Path) At(i int) *sta.PinArrival { return p.Arrivals[i] }

func (p *Path) PrevArc(i int) *sta.TimingArc {
	if i <= 0 || i >= len(p.Arcs) {
		return nil
	}
	return p.Arcs[i]
}

func (p *Path) StartPath() *sta.PinArrival { return p.Arrivals[0] }

// RecordingLogger collects every Warnf call for assertions, instead of
// printing it.
type RecordingLogger struct {
	Messages []string
}

func (l *RecordingLogger) Warnf(format string, args ...any) {
	l.Messages = append(l.Messages, fmt.Sprintf(format, args...))
}
