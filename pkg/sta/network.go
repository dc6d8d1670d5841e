// Package sta defines the narrow, read-only contracts pathspice consumes
// from its host static-timing-analysis engine: the netlist database, the
// liberty model, the timing graph and delay calculator, the parasitics
// store, a logic simulator for propagated constants, and the already
// expanded timing path itself. pathspice never constructs or mutates any
// of these; it only reads through the interfaces in this package.
//
// pkg/stafake provides in-memory implementations for tests and for the
// standalone CLI, since no real STA engine ships in this module.
package sta

import "fmt"

// Pin, Instance and Net are opaque handles into the host netlist
// database. A real engine backs these with whatever object identity it
// already uses internally; pathspice only ever compares and prints them.
type Pin interface{ fmt.Stringer }
type Instance interface{ fmt.Stringer }
type Net interface{ fmt.Stringer }
type Vertex interface{ fmt.Stringer }

// PortDirection mirrors a liberty port's direction.
type PortDirection int

const (
	DirInput PortDirection = iota
	DirOutput
	DirInout
	DirInternal
)

// IsAnyInput reports whether the direction accepts a driven value.
func (d PortDirection) IsAnyInput() bool { return d == DirInput || d == DirInout }

// IsOutput reports whether the direction can drive a net.
func (d PortDirection) IsOutput() bool { return d == DirOutput || d == DirInout }

// Network is the read-only netlist/connectivity contract (spec.md §6).
type Network interface {
	// PathName renders the hierarchical SPICE node/instance name for a
	// pin, instance or net handle.
	PathName(entity fmt.Stringer) string
	Instance(pin Pin) Instance
	LibertyPort(pin Pin) *LibertyPort
	LibertyCell(inst Instance) *LibertyCell
	FindLibertyCell(name string) *LibertyCell
	Direction(pin Pin) PortDirection
	IsHierarchical(pin Pin) bool
	IsTopLevelPort(pin Pin) bool
	IsLoad(pin Pin) bool
	FindPin(inst Instance, portName string) (Pin, bool)
	Net(pin Pin) Net
	// ConnectedPins returns every pin on the same net as pin, excluding
	// pin itself. Materialized (not a callback iterator) per spec.md §9.
	ConnectedPins(pin Pin) []Pin
}
