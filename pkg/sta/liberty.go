package sta

import "github.com/edp1096/pathspice/pkg/transition"

// LibertyPgPort is a cell's explicit power or ground terminal.
type LibertyPgPort struct {
	Name        string
	VoltageName string
	Cell        *LibertyCell
}

// LibertyPort is one port of a liberty cell.
type LibertyPort struct {
	Name             string
	Direction        PortDirection
	Function         *FuncExpr // nil for non-output/undeclared-function ports
	RelatedPowerPin  *LibertyPgPort
	RelatedGroundPin *LibertyPgPort
	Cell             *LibertyCell
}

// LibertyCell is a liberty library cell: ports, PG ports, and the
// sequential elements (if any) whose internal output feeds an output
// port's function.
type LibertyCell struct {
	Name        string
	Library     *LibertyLibrary
	Ports       map[string]*LibertyPort
	PgPorts     map[string]*LibertyPgPort
	Sequentials []*Sequential
}

// FindLibertyPort looks up a port by name.
func (c *LibertyCell) FindLibertyPort(name string) *LibertyPort {
	return c.Ports[name]
}

// FindPgPort looks up a power/ground port by name.
func (c *LibertyCell) FindPgPort(name string) *LibertyPgPort {
	return c.PgPorts[name]
}

// OutputPortSequential returns the sequential element whose internal
// output expression names port, if any.
func (c *LibertyCell) OutputPortSequential(port *LibertyPort) *Sequential {
	for _, seq := range c.Sequentials {
		if seq.Output != nil && seq.Output.HasPort(port) {
			return seq
		}
	}
	return nil
}

// Sequential is a cell's sequential (flip-flop/latch) description: the
// internal port its output expression names, and the data expression fed
// into its storage element.
type Sequential struct {
	// Output is the internal-port expression the driver function
	// references (e.g. a reference to internal port IQ).
	Output *FuncExpr
	// Data is the expression driving the storage element (e.g. D).
	Data *FuncExpr
}

// LibertyThresholds holds the rise/fall input and slew-measurement
// thresholds, expressed as fractions of the supply voltage.
type LibertyThresholds struct {
	Input      float64
	SlewLower  float64
	SlewUpper  float64
}

// OperatingConditions is a PVT corner.
type OperatingConditions struct {
	Voltage     float64
	Temperature float64
}

// LibertyLibrary is the per-library data pathspice needs: named supply
// voltages, default operating conditions, and per-transition thresholds.
type LibertyLibrary struct {
	Name                       string
	SupplyVoltages             map[string]float64
	DefaultOperatingConditions *OperatingConditions
	Thresholds                 [2]LibertyThresholds // indexed by transition.RiseFall
}

// SupplyVoltage looks up a named supply net's voltage.
func (l *LibertyLibrary) SupplyVoltage(name string) (float64, bool) {
	v, ok := l.SupplyVoltages[name]
	return v, ok
}

func (l *LibertyLibrary) InputThreshold(tr transition.RiseFall) float64 {
	return l.Thresholds[tr.Index()].Input
}

func (l *LibertyLibrary) SlewLowerThreshold(tr transition.RiseFall) float64 {
	return l.Thresholds[tr.Index()].SlewLower
}

func (l *LibertyLibrary) SlewUpperThreshold(tr transition.RiseFall) float64 {
	return l.Thresholds[tr.Index()].SlewUpper
}
