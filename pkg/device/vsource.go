package device

import (
	"strconv"
	"strings"

	"github.com/edp1096/pathspice/pkg/util"
)

// VoltageSource renders a DC or PWL independent voltage source card
// between a named node and ground. pathspice only ever drives its own
// sources — DC for static side-input pinning, PWL for clock and data
// stimulus edges — so the SIN/PULSE/AC forms the teacher's simulator
// needed to drive arbitrary netlists have no place here.
type VoltageSource struct {
	BaseDevice
	Index int

	isPWL bool
	dc    float64

	times  []float64
	values []float64
}

// NewDCVoltageSource builds a source card of the form
// "v<index> <node> 0 <value>".
func NewDCVoltageSource(index int, node string, value float64) *VoltageSource {
	return &VoltageSource{
		BaseDevice: BaseDevice{NodeNames: []string{node}},
		Index:      index,
		dc:         value,
	}
}

// NewPWLVoltageSource builds a piecewise-linear source card from the
// breakpoint times/values pairs a stimulus waveform already resolved.
// times and values must be the same length and at least one pair long.
func NewPWLVoltageSource(index int, node string, times, values []float64) *VoltageSource {
	return &VoltageSource{
		BaseDevice: BaseDevice{NodeNames: []string{node}},
		Index:      index,
		isPWL:      true,
		times:      times,
		values:     values,
	}
}

func (v *VoltageSource) Spice() string {
	if !v.isPWL {
		return "v" + strconv.Itoa(v.Index) + " " + v.NodeNames[0] + " 0 " + util.FormatVoltage(v.dc) + "\n"
	}

	var b strings.Builder
	b.WriteString("v" + strconv.Itoa(v.Index) + " " + v.NodeNames[0] + " 0 pwl(\n")
	for i := range v.times {
		b.WriteString("+" + util.FormatExp(v.times[i]) + " " + util.FormatExp(v.values[i]) + "\n")
	}
	b.WriteString("+)\n")
	return b.String()
}
