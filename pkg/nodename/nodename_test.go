package nodename

import (
	"testing"

	"github.com/edp1096/pathspice/pkg/stafake"
)

func TestNamerAssignsStableIndicesPerNet(t *testing.T) {
	n := New()
	n.Reset("net1")

	interior1 := &stafake.ParasiticNode{NodeName: "internal1"}
	interior2 := &stafake.ParasiticNode{NodeName: "internal2"}

	first := n.Name(interior1)
	if first != "net1/1" {
		t.Fatalf("Name(interior1) = %q, want net1/1", first)
	}
	if got := n.Name(interior1); got != first {
		t.Fatalf("Name must be idempotent for the same node, got %q then %q", first, got)
	}
	if got := n.Name(interior2); got != "net1/2" {
		t.Fatalf("Name(interior2) = %q, want net1/2", got)
	}
}

func TestNamerUsesConnectionPinNameDirectly(t *testing.T) {
	n := New()
	n.Reset("net1")

	pinNode := &stafake.ParasiticNode{NodeName: "ignored", Pin: stafake.Pin("u1/A"), HasPin: true}
	if got := n.Name(pinNode); got != "u1/A" {
		t.Fatalf("Name(pinNode) = %q, want the connection pin's own name u1/A", got)
	}
}

func TestNamerResetsCounterPerNet(t *testing.T) {
	n := New()
	n.Reset("net1")
	n.Name(&stafake.ParasiticNode{NodeName: "a"})
	n.Name(&stafake.ParasiticNode{NodeName: "b"})

	n.Reset("net2")
	interior := &stafake.ParasiticNode{NodeName: "c"}
	if got := n.Name(interior); got != "net2/1" {
		t.Fatalf("Name after Reset = %q, want net2/1 (counter restarts per net)", got)
	}
}
