// Package sensitize determines, and renders as voltage-source cards,
// the logic values or clocked edges held on every side input of a
// path's gates so the intended timing arc is the one actually
// exercised. Grounded on gatePortValues, regPortValues, seqPortValues,
// onePort and writeSubcktInstVoltSrcs in
// original_source/search/WritePathSpice.cc.
package sensitize

import (
	"github.com/pkg/errors"

	"github.com/edp1096/pathspice/pkg/device"
	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stage"
	"github.com/edp1096/pathspice/pkg/stimulus"
	"github.com/edp1096/pathspice/pkg/transition"
)

// Logger receives recoverable-warning diagnostics. Any type with this
// method (including pkg/deck's Logger) satisfies it.
type Logger interface {
	Warnf(format string, args ...any)
}

// ErrPgVoltageUnresolved is returned when a power/ground port names a
// supply net the liberty library and the configured rails both fail to
// resolve.
var ErrPgVoltageUnresolved = errors.New("pg voltage unresolved")

// PortValues maps a liberty port to the logic value or edge it should
// be forced to.
type PortValues map[*sta.LibertyPort]sta.LogicValue

// Rails names the top-level power/ground nets and their resolved
// voltages, used when a subckt port matches the rail name directly
// rather than a declared pg_pin.
type Rails struct {
	PowerName    string
	GndName      string
	PowerVoltage float64
	GndVoltage   float64
}

// Sensitizer computes and emits side-input voltage sources for one
// stage's gate instance and the off-path side loads on its driver net.
type Sensitizer struct {
	network sta.Network
	sim     sta.LogicSim
	dcalc   sta.DelayCalc
	stim    *stimulus.Synthesizer
	rails   Rails
	log     Logger
}

func New(network sta.Network, sim sta.LogicSim, dcalc sta.DelayCalc, stim *stimulus.Synthesizer, rails Rails, log Logger) *Sensitizer {
	return &Sensitizer{network: network, sim: sim, dcalc: dcalc, stim: stim, rails: rails, log: log}
}

// GateValues computes the side-input values for stage's driver: either
// a sequential element's data-input edge (register/latch output arcs)
// or the Boolean-function-derived constants for a combinational gate.
// clk and apIndex are only meaningful when the stage is a
// register-clock-to-output arc; WritePortSources uses them to place
// the forced edge within the clock cycle.
func (s *Sensitizer) GateValues(stager *stage.Stager, stg stage.Index) (PortValues, *sta.Clock, sta.DcalcAPIndex) {
	values := PortValues{}
	drvrPin := stager.DriverPin(stg)
	drvrPort := s.network.LibertyPort(drvrPin)
	gateArc := stager.GateArc(stg)

	switch {
	case gateArc != nil && gateArc.IsRegClkToQ:
		clk, apIndex := s.regValues(stager, stg, drvrPort, values)
		return values, clk, apIndex
	case drvrPort.Function != nil:
		inputPin, _ := stager.GateInputPin(stg)
		inputPort := s.network.LibertyPort(inputPin)
		gateExprValues(drvrPort.Function, inputPort, values)
	}
	return values, nil, 0
}

func (s *Sensitizer) regValues(stager *stage.Stager, stg stage.Index, drvrPort *sta.LibertyPort, values PortValues) (*sta.Clock, sta.DcalcAPIndex) {
	drvrExpr := drvrPort.Function
	if drvrExpr == nil || drvrExpr.Op != sta.FuncPort {
		return nil, 0
	}
	qPort := drvrExpr.Port
	inst := s.network.Instance(stager.DriverPin(stg))
	cell := s.network.LibertyCell(inst)
	seq := cell.OutputPortSequential(qPort)
	if seq == nil {
		s.log.Warnf("no register/latch found for path from %s to %s", inputPortName(stager, stg, s.network), drvrPort.Name)
		return nil, 0
	}

	drvrPath := stager.DriverPath(stg)
	seqValues(seq, drvrPath.Transition, values)
	return drvrPath.Clock, drvrPath.DcalcAP
}

func inputPortName(stager *stage.Stager, stg stage.Index, network sta.Network) string {
	pin, ok := stager.GateInputPin(stg)
	if !ok {
		return ""
	}
	return network.LibertyPort(pin).Name
}

// gateExprValues walks the driver's function tree recursively, forcing
// the other operand of an OR/AND/XOR node to the constant (or inverted
// constant) that keeps input_port the arc-controlling input. XOR always
// forces the other side to 0 regardless of arc sense — an acknowledged
// approximation carried over unchanged from the original generator.
func gateExprValues(expr *sta.FuncExpr, inputPort *sta.LibertyPort, values PortValues) {
	if expr == nil {
		return
	}
	left, right := expr.Left, expr.Right
	switch expr.Op {
	case sta.FuncNot:
		gateExprValues(left, inputPort, values)
	case sta.FuncOr:
		switch {
		case left.HasPort(inputPort) && right.Op == sta.FuncPort:
			values[right.Port] = sta.LogicZero
		case left.HasPort(inputPort) && right.Op == sta.FuncNot && right.Left.Op == sta.FuncPort:
			values[right.Left.Port] = sta.LogicOne
		case right.HasPort(inputPort) && left.Op == sta.FuncPort:
			values[left.Port] = sta.LogicZero
		case right.HasPort(inputPort) && left.Op == sta.FuncNot && left.Left.Op == sta.FuncPort:
			values[left.Left.Port] = sta.LogicOne
		default:
			gateExprValues(left, inputPort, values)
			gateExprValues(right, inputPort, values)
		}
	case sta.FuncAnd:
		switch {
		case left.HasPort(inputPort) && right.Op == sta.FuncPort:
			values[right.Port] = sta.LogicOne
		case left.HasPort(inputPort) && right.Op == sta.FuncNot && right.Left.Op == sta.FuncPort:
			values[right.Left.Port] = sta.LogicZero
		case right.HasPort(inputPort) && left.Op == sta.FuncPort:
			values[left.Port] = sta.LogicOne
		case right.HasPort(inputPort) && left.Op == sta.FuncNot && left.Left.Op == sta.FuncPort:
			values[left.Left.Port] = sta.LogicZero
		default:
			gateExprValues(left, inputPort, values)
			gateExprValues(right, inputPort, values)
		}
	case sta.FuncXor:
		switch {
		case left.Op == sta.FuncPort && left.Port == inputPort && right.Op == sta.FuncPort:
			values[right.Port] = sta.LogicZero
		case right.Op == sta.FuncPort && right.Port == inputPort && left.Op == sta.FuncPort:
			values[left.Port] = sta.LogicZero
		default:
			gateExprValues(left, inputPort, values)
			gateExprValues(right, inputPort, values)
		}
	}
}

// onePort picks any one port referenced by expr, preferring the
// leftmost.
func onePort(expr *sta.FuncExpr) *sta.LibertyPort {
	if expr == nil {
		return nil
	}
	switch expr.Op {
	case sta.FuncPort:
		return expr.Port
	case sta.FuncNot:
		return onePort(expr.Left)
	case sta.FuncOr, sta.FuncAnd, sta.FuncXor:
		if p := onePort(expr.Left); p != nil {
			return p
		}
		return onePort(expr.Right)
	default:
		return nil
	}
}

// seqValues assigns a rise or fall edge to one data-input port of a
// sequential element, consistent with the driver's transition and the
// data input's timing sense.
func seqValues(seq *sta.Sequential, tr transition.RiseFall, values PortValues) {
	port := onePort(seq.Data)
	if port == nil {
		return
	}
	switch seq.Data.PortTimingSense(port) {
	case sta.SensePositiveUnate:
		if tr == transition.Rise {
			values[port] = sta.LogicRise
		} else {
			values[port] = sta.LogicFall
		}
	case sta.SenseNegativeUnate:
		if tr == transition.Rise {
			values[port] = sta.LogicFall
		} else {
			values[port] = sta.LogicRise
		}
	}
}

// WritePortSources renders the voltage-source cards for every subckt
// port of instPin's instance other than the two ports named by
// skip1/skip2 (the gate-input and driver ports on the gate instance;
// on a side-load instance, its port on the driver net and the path
// driver's port name): pg-pin supplies, rail-named supplies, and
// forced data inputs.
func (s *Sensitizer) WritePortSources(instPin sta.Pin, skip1, skip2 string, voltIndex *int, values PortValues, clk *sta.Clock, apIndex sta.DcalcAPIndex, subcktPortNames []string) (string, error) {
	inst := s.network.Instance(instPin)
	instName := s.network.PathName(inst)
	cell := s.network.LibertyCell(inst)

	var out string
	for _, portName := range subcktPortNames {
		if pg := cell.FindPgPort(portName); pg != nil {
			voltage, err := s.pgVoltage(pg)
			if err != nil {
				return out, err
			}
			out += s.voltageCard(instName, portName, voltage, voltIndex)
			continue
		}
		if portName == s.rails.PowerName {
			out += s.voltageCard(instName, portName, s.rails.PowerVoltage, voltIndex)
			continue
		}
		if portName == s.rails.GndName {
			out += s.voltageCard(instName, portName, s.rails.GndVoltage, voltIndex)
			continue
		}
		if portName == skip1 || portName == skip2 {
			continue
		}

		port := cell.FindLibertyPort(portName)
		if port == nil || !port.Direction.IsAnyInput() {
			continue
		}
		pin, ok := s.network.FindPin(inst, portName)
		if !ok {
			continue
		}

		card, err := s.forcedValueCard(instName, pin, port, values, clk, apIndex, voltIndex)
		if err != nil {
			return out, err
		}
		out += card
	}
	return out, nil
}

func (s *Sensitizer) forcedValueCard(instName string, pin sta.Pin, port *sta.LibertyPort, values PortValues, clk *sta.Clock, apIndex sta.DcalcAPIndex, voltIndex *int) (string, error) {
	value := s.sim.LogicValue(pin)
	if value == sta.LogicUnknown {
		if v, ok := values[port]; ok {
			value = v
		}
	}

	switch value {
	case sta.LogicZero, sta.LogicUnknown:
		voltage, err := s.relatedVoltage(port.RelatedGroundPin, s.rails.GndVoltage)
		if err != nil {
			return "", err
		}
		return s.voltageCard(instName, port.Name, voltage, voltIndex), nil
	case sta.LogicOne:
		voltage, err := s.relatedVoltage(port.RelatedPowerPin, s.rails.PowerVoltage)
		if err != nil {
			return "", err
		}
		return s.voltageCard(instName, port.Name, voltage, voltIndex), nil
	case sta.LogicRise:
		return s.clockedStepCard(pin, transition.Rise, clk, apIndex, voltIndex), nil
	case sta.LogicFall:
		return s.clockedStepCard(pin, transition.Fall, clk, apIndex, voltIndex), nil
	}
	return "", nil
}

func (s *Sensitizer) relatedVoltage(pg *sta.LibertyPgPort, fallback float64) (float64, error) {
	if pg == nil {
		return fallback, nil
	}
	return s.pgVoltage(pg)
}

func (s *Sensitizer) pgVoltage(pg *sta.LibertyPgPort) (float64, error) {
	if pg == nil || pg.Cell == nil {
		return 0, errors.WithStack(ErrPgVoltageUnresolved)
	}
	lib := pg.Cell.Library
	if v, ok := lib.SupplyVoltage(pg.VoltageName); ok {
		return v, nil
	}
	switch pg.VoltageName {
	case s.rails.PowerName:
		return s.rails.PowerVoltage, nil
	case s.rails.GndName:
		return s.rails.GndVoltage, nil
	}
	return 0, errors.Wrapf(ErrPgVoltageUnresolved, "pg_pin %s/%s voltage %s", pg.Cell.Name, pg.Name, pg.VoltageName)
}

func (s *Sensitizer) voltageCard(instName, portName string, voltage float64, voltIndex *int) string {
	v := device.NewDCVoltageSource(*voltIndex, instName+"/"+portName, voltage)
	*voltIndex++
	return v.Spice()
}

// clockedStepCard renders a PWL source that rises or falls halfway
// through the first clock cycle, for a side input forced to track a
// clock edge.
func (s *Sensitizer) clockedStepCard(pin sta.Pin, tr transition.RiseFall, clk *sta.Clock, apIndex sta.DcalcAPIndex, voltIndex *int) string {
	vertex := s.dcalc.PinLoadVertex(pin)
	slew := s.stim.Slew(vertex, tr, apIndex, nil)
	time := clk.Period/10 + clk.Period/2.0
	return s.stim.WriteStepVoltSource(pin, tr, slew, time, voltIndex)
}
