// Package parasitic emits the resistor and capacitor cards for one
// stage's driver-net parasitic network, plus the short-circuit patch
// resistors that bridge any load the network didn't reach. Grounded on
// WritePathSpice::writeStageParasitics, ParasiticDeviceLess and
// ParasiticNodeLess in original_source/search/WritePathSpice.cc.
package parasitic

import (
	"sort"
	"strings"

	"github.com/edp1096/pathspice/internal/consts"
	"github.com/edp1096/pathspice/pkg/device"
	"github.com/edp1096/pathspice/pkg/nodename"
	"github.com/edp1096/pathspice/pkg/sta"
)

// Emitter renders a driver net's parasitic network as SPICE element
// cards, plus a header comment naming the net.
type Emitter struct {
	network    sta.Network
	parasitics sta.Parasitics
	namer      *nodename.Namer
}

func New(network sta.Network, parasitics sta.Parasitics) *Emitter {
	return &Emitter{network: network, parasitics: parasitics, namer: nodename.New()}
}

// Write renders the parasitic cards reachable from drvrPin at the
// given analysis point, plus patch resistors for connected load pins
// the network never reached.
func (e *Emitter) Write(drvrPin sta.Pin, ap sta.AnalysisPoint) string {
	var b strings.Builder
	resIndex := 1
	capIndex := 1
	reachable := map[sta.Pin]bool{}

	net := e.network.Net(drvrPin)
	var netName string
	if net != nil {
		netName = e.network.PathName(net)
	} else {
		netName = e.network.PathName(drvrPin)
	}

	network, found := e.parasitics.FindNetwork(drvrPin, ap)
	if found {
		e.namer.Reset(netName)
		b.WriteString("* Net " + netName + "\n")

		devices := append([]sta.ParasiticDevice(nil), network.Devices()...)
		sort.SliceStable(devices, func(i, j int) bool {
			return deviceLess(devices[i], devices[j])
		})

		for _, d := range devices {
			value := d.Value(ap)
			switch {
			case d.IsResistor():
				node1, node2 := d.Node1(), d.Node2()
				r := device.NewResistor(resIndex, e.namer.Name(node1), e.namer.Name(node2), value)
				b.WriteString(r.Spice())
				resIndex++

				if pin1, ok := node1.ConnectionPin(); ok {
					reachable[pin1] = true
				}
				if pin2, ok := node2.ConnectionPin(); ok {
					reachable[pin2] = true
				}
			case d.IsCouplingCap():
				// Ground coupling caps for now.
				c := device.NewCapacitor(capIndex, e.namer.Name(d.Node1()), value)
				b.WriteString(c.Spice())
				capIndex++
			}
		}
	} else {
		b.WriteString("* No parasitics found for this net.\n")
	}

	for _, pin := range e.network.ConnectedPins(drvrPin) {
		if pin != drvrPin &&
			e.network.IsLoad(pin) &&
			!e.network.IsHierarchical(pin) &&
			!reachable[pin] {
			r := device.NewResistor(resIndex, e.network.PathName(drvrPin), e.network.PathName(pin), consts.ShortCktResistance)
			b.WriteString(r.Spice())
			resIndex++
		}
	}

	if found {
		nodes := append([]sta.ParasiticNode(nil), network.Nodes()...)
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodeLess(nodes[i], nodes[j])
		})

		for _, node := range nodes {
			cap := node.NodeGndCap(ap)
			// Spice has a cow over zero value caps.
			if cap > 0.0 {
				c := device.NewCapacitor(capIndex, e.namer.Name(node), cap)
				b.WriteString(c.Spice())
				capIndex++
			}
		}
	}

	return b.String()
}

func deviceLess(d1, d2 sta.ParasiticDevice) bool {
	name1, name2 := d1.Node1().Name(), d2.Node1().Name()
	if name1 == name2 {
		node12, node22 := d1.Node2(), d2.Node2()
		if node12 == nil || node22 == nil {
			return false
		}
		return node12.Name() < node22.Name()
	}
	return name1 < name2
}

func nodeLess(n1, n2 sta.ParasiticNode) bool {
	return n1.Name() < n2.Name()
}
