package sta

// AnalysisPoint identifies the corner a parasitic network or device value
// was extracted at. Opaque to pathspice; only ever round-tripped back
// into the Parasitics contract.
type AnalysisPoint interface{}

// Parasitics is the parasitics-store contract.
type Parasitics interface {
	FindNetwork(pin Pin, ap AnalysisPoint) (ParasiticNetwork, bool)
}

// ParasiticNetwork is the RC graph for one driver net.
type ParasiticNetwork interface {
	// Devices and Nodes are materialized (not callback iterators) per
	// spec.md §9; callers sort them before emission.
	Devices() []ParasiticDevice
	Nodes() []ParasiticNode
}

// ParasiticDevice is one resistor or coupling capacitor.
type ParasiticDevice interface {
	IsResistor() bool
	IsCouplingCap() bool
	Value(ap AnalysisPoint) float64
	Node1() ParasiticNode
	Node2() ParasiticNode
}

// ParasiticNode is one node of a parasitic network: either a net node
// that happens to land on a pin, or a purely interior node.
type ParasiticNode interface {
	Name() string
	// ConnectionPin returns the pin this node corresponds to, if any.
	ConnectionPin() (Pin, bool)
	NodeGndCap(ap AnalysisPoint) float64
}
