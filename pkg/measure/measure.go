// Package measure emits the ".measure tran" directives that report
// per-stage slews and delays at the same thresholds STA used to
// compute them. Grounded on writeMeasureStmts, writeMeasureDelayStmt
// and writeMeasureSlewStmt in
// original_source/search/WritePathSpice.cc.
package measure

import (
	"fmt"
	"strings"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stage"
	"github.com/edp1096/pathspice/pkg/transition"
	"github.com/edp1096/pathspice/pkg/util"
)

// Emitter renders .measure directives against one library's thresholds
// and the resolved power-rail voltage those thresholds scale against.
type Emitter struct {
	network      sta.Network
	library      *sta.LibertyLibrary
	powerVoltage float64
}

func New(network sta.Network, library *sta.LibertyLibrary, powerVoltage float64) *Emitter {
	return &Emitter{network: network, library: library, powerVoltage: powerVoltage}
}

// WriteAll renders every stage's slew and delay measurements, in
// stage order: for s>1, gate-input slew and gate delay; for every
// stage, driver slew and wire delay; for the last stage only, load
// slew.
func (m *Emitter) WriteAll(stager *stage.Stager) string {
	var b strings.Builder
	for s := stager.First(); s <= stager.Last(); s++ {
		gateInputPath := stager.GateInputPath(s)
		drvrPath := stager.DriverPath(s)
		loadPath := stager.LoadPath(s)

		if gateInputPath != nil {
			b.WriteString(m.slewStmt(stager, s, gateInputPath))
			b.WriteString(m.delayStmt(stager, s, gateInputPath, drvrPath))
		}
		b.WriteString(m.slewStmt(stager, s, drvrPath))
		b.WriteString(m.delayStmt(stager, s, drvrPath, loadPath))
		if s == stager.Last() {
			b.WriteString(m.slewStmt(stager, s, loadPath))
		}
	}
	return b.String()
}

func (m *Emitter) delayStmt(stager *stage.Stager, s stage.Index, from, to *sta.PinArrival) string {
	fromName := m.network.PathName(from.Pin)
	fromThreshold := m.powerVoltage * m.library.InputThreshold(from.Transition)

	toName := m.network.PathName(to.Pin)
	toThreshold := m.powerVoltage * m.library.InputThreshold(to.Transition)

	var b strings.Builder
	fmt.Fprintf(&b, ".measure tran %s_%s_delay_%s\n", stager.Name(s), fromName, toName)
	fmt.Fprintf(&b, "+trig v(%s) val=%s %s=last\n", fromName, util.FormatVoltage(fromThreshold), from.Transition.Spice())
	fmt.Fprintf(&b, "+targ v(%s) val=%s %s=last\n", toName, util.FormatVoltage(toThreshold), to.Transition.Spice())
	return b.String()
}

func (m *Emitter) slewStmt(stager *stage.Stager, s stage.Index, p *sta.PinArrival) string {
	pinName := m.network.PathName(p.Pin)
	tr := p.Transition
	lower := m.powerVoltage * m.library.SlewLowerThreshold(tr)
	upper := m.powerVoltage * m.library.SlewUpperThreshold(tr)

	threshold1, threshold2 := upper, lower
	if tr == transition.Rise {
		threshold1, threshold2 = lower, upper
	}

	var b strings.Builder
	fmt.Fprintf(&b, ".measure tran %s_%s_slew\n", stager.Name(s), pinName)
	fmt.Fprintf(&b, "+trig v(%s) val=%s %s=last\n", pinName, util.FormatVoltage(threshold1), tr.Spice())
	fmt.Fprintf(&b, "+targ v(%s) val=%s %s=last\n", pinName, util.FormatVoltage(threshold2), tr.Spice())
	return b.String()
}
