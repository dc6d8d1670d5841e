package harvest

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stafake"
)

const vendorLib = `* vendor library
.subckt INV_X1 A Y VDD VSS
M1 Y A VDD VDD pmos
M2 Y A VSS VSS nmos
.ends

.subckt NAND2_X1 A B Y VDD VSS
* stub
.ends
`

func newCellNetwork(t *testing.T, names ...string) *stafake.Network {
	t.Helper()
	network := stafake.NewNetwork()
	for _, name := range names {
		cell := &sta.LibertyCell{
			Name: name,
			Ports: map[string]*sta.LibertyPort{
				"A": {Name: "A", Direction: sta.DirInput},
				"Y": {Name: "Y", Direction: sta.DirOutput},
			},
			PgPorts: map[string]*sta.LibertyPgPort{
				"VDD": {Name: "VDD", VoltageName: "VDD"},
				"VSS": {Name: "VSS", VoltageName: "VSS"},
			},
		}
		network.SetCell(stafake.Instance(name+"_inst"), cell)
	}
	return network
}

func TestHarvesterCopiesWantedSubckt(t *testing.T) {
	network := newCellNetwork(t, "INV_X1")
	h := New(network, "VDD", "VSS")

	result, err := h.Run(strings.NewReader(vendorLib), map[string]bool{"INV_X1": true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(result.Subckts, ".subckt INV_X1") {
		t.Fatalf("harvested text missing INV_X1 subckt: %q", result.Subckts)
	}
	if strings.Contains(result.Subckts, "NAND2_X1") {
		t.Fatalf("harvested text must not include an unwanted cell: %q", result.Subckts)
	}
	if got := result.PortNamesOf["INV_X1"]; len(got) != 4 || got[0] != "A" {
		t.Fatalf("PortNamesOf[INV_X1] = %v, want [A Y VDD VSS]", got)
	}
}

func TestHarvesterMissingSubckt(t *testing.T) {
	network := newCellNetwork(t, "DFF_X1")
	h := New(network, "VDD", "VSS")

	_, err := h.Run(strings.NewReader(vendorLib), map[string]bool{"DFF_X1": true})
	if err == nil {
		t.Fatal("Run() error = nil, want ErrMissingSubckt")
	}
	if errors.Cause(err) != ErrMissingSubckt {
		t.Fatalf("Run() error = %v, want ErrMissingSubckt", err)
	}
}

func TestHarvesterPortUnmappedFails(t *testing.T) {
	const badLib = `.subckt INV_X1 A Z VDD VSS
.ends
`
	network := newCellNetwork(t, "INV_X1")
	h := New(network, "VDD", "VSS")

	_, err := h.Run(strings.NewReader(badLib), map[string]bool{"INV_X1": true})
	if err == nil {
		t.Fatal("Run() error = nil, want ErrSubcktPortUnmapped for port Z")
	}
}

func TestHarvesterEndsMissingFails(t *testing.T) {
	const badLib = `.subckt INV_X1 A Y VDD VSS
M1 Y A VDD VDD pmos
`
	network := newCellNetwork(t, "INV_X1")
	h := New(network, "VDD", "VSS")

	_, err := h.Run(strings.NewReader(badLib), map[string]bool{"INV_X1": true})
	if err == nil {
		t.Fatal("Run() error = nil, want ErrSubcktEndsMissing")
	}
}
