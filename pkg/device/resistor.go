package device

import (
	"fmt"

	"github.com/edp1096/pathspice/pkg/util"
)

// Resistor renders one parasitic or patch resistor card:
// "R<index> <node1> <node2> <value>".
type Resistor struct {
	BaseDevice
	Index int
	Value float64
}

func NewResistor(index int, node1, node2 string, value float64) *Resistor {
	return &Resistor{
		BaseDevice: BaseDevice{NodeNames: []string{node1, node2}},
		Index:      index,
		Value:      value,
	}
}

func (r *Resistor) Spice() string {
	return fmt.Sprintf("R%d %s %s %s\n", r.Index, r.NodeNames[0], r.NodeNames[1], util.FormatExp(r.Value))
}
