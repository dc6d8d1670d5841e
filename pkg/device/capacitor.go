package device

import (
	"fmt"

	"github.com/edp1096/pathspice/pkg/util"
)

// Capacitor renders a grounded capacitor card: "C<index> <node> 0
// <value>". pathspice only ever emits grounded capacitors — coupling
// capacitors are approximated as decoupling (spec.md §4.4, §9), so a
// coupling cap and a node's ground capacitance use the same card shape.
type Capacitor struct {
	BaseDevice
	Index int
	Value float64
}

func NewCapacitor(index int, node string, value float64) *Capacitor {
	return &Capacitor{
		BaseDevice: BaseDevice{NodeNames: []string{node}},
		Index:      index,
		Value:      value,
	}
}

func (c *Capacitor) Spice() string {
	return fmt.Sprintf("C%d %s 0 %s\n", c.Index, c.NodeNames[0], util.FormatExp(c.Value))
}
