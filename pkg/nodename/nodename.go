// Package nodename assigns the per-net internal node names that appear
// in a stage's parasitic network cards. It is grounded on
// WritePathSpice::initNodeMap/nodeName: a parasitic node that
// coincides with a pin keeps the pin's own name, while an internal
// node with no pin gets a small sequential index scoped to the net
// currently being written.
package nodename

import (
	"strconv"

	"github.com/edp1096/pathspice/pkg/sta"
)

// Namer hands out stable names for the parasitic nodes of one net at a
// time. Call Reset before each new net; indices restart from 1 and the
// node-to-index map is discarded, exactly as the original implementation
// clears node_map_ per net.
type Namer struct {
	netName  string
	next     int
	assigned map[sta.ParasiticNode]int
}

// New returns a Namer with no net yet selected. Call Reset before
// naming any node.
func New() *Namer {
	return &Namer{}
}

// Reset begins naming nodes for a new net.
func (n *Namer) Reset(netName string) {
	n.netName = netName
	n.next = 1
	n.assigned = make(map[sta.ParasiticNode]int)
}

// Name returns the node's SPICE node name. A node with a connection
// pin is named after that pin; an internal node is named
// "<net>/<index>" with indices assigned in first-seen order.
func (n *Namer) Name(node sta.ParasiticNode) string {
	if pin, ok := node.ConnectionPin(); ok {
		return pin.String()
	}

	index, ok := n.assigned[node]
	if !ok {
		index = n.next
		n.next++
		n.assigned[node] = index
	}
	return n.netName + "/" + strconv.Itoa(index)
}
