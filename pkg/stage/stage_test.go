package stage

import (
	"testing"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/transition"
)

func arrival(pin string) *sta.PinArrival {
	return &sta.PinArrival{Pin: fakePin(pin), Transition: transition.Rise}
}

type fakePin string

func (p fakePin) String() string { return string(p) }

type fakePath struct {
	arrivals []*sta.PinArrival
}

func (p *fakePath) Len() int                  { return len(p.arrivals) }
func (p *fakePath) At(i int) *sta.PinArrival  { return p.arrivals[i] }
func (p *fakePath) PrevArc(i int) *sta.TimingArc {
	if i <= 0 {
		return nil
	}
	return &sta.TimingArc{}
}
func (p *fakePath) StartPath() *sta.PinArrival { return p.arrivals[0] }

func twoStagePath() sta.Path {
	return &fakePath{arrivals: []*sta.PinArrival{
		arrival("in"), arrival("u1/A"), arrival("u1/Y"), arrival("out"),
	}}
}

func TestStagerIndexArithmetic(t *testing.T) {
	path := twoStagePath()
	s := New(path)

	if got := s.First(); got != 1 {
		t.Fatalf("First() = %d, want 1", got)
	}
	if got := s.Last(); got != 2 {
		t.Fatalf("Last() = %d, want 2 (k=(4+1)/2)", got)
	}

	if s.GateInputPath(1) != nil {
		t.Fatal("stage 1 must have no gate input")
	}
	if got := s.DriverPath(1).Pin.String(); got != "in" {
		t.Fatalf("stage1 driver = %s, want in", got)
	}
	if got := s.LoadPath(1).Pin.String(); got != "u1/A" {
		t.Fatalf("stage1 load = %s, want u1/A", got)
	}

	if got := s.GateInputPath(2).Pin.String(); got != "u1/A" {
		t.Fatalf("stage2 gate input = %s, want u1/A", got)
	}
	if got := s.DriverPath(2).Pin.String(); got != "u1/Y" {
		t.Fatalf("stage2 driver = %s, want u1/Y", got)
	}
	if got := s.LoadPath(2).Pin.String(); got != "out" {
		t.Fatalf("stage2 load = %s, want out", got)
	}
}

func TestStagerName(t *testing.T) {
	s := New(twoStagePath())
	if got := s.Name(1); got != "stage1" {
		t.Fatalf("Name(1) = %q, want stage1", got)
	}
	if got := s.Name(2); got != "stage2" {
		t.Fatalf("Name(2) = %q, want stage2", got)
	}
}

func TestStagerGateArc(t *testing.T) {
	s := New(twoStagePath())
	if arc := s.GateArc(1); arc != nil {
		t.Fatal("stage1 has no gate arc, PrevArc(0) must be nil")
	}
	if arc := s.GateArc(2); arc == nil {
		t.Fatal("stage2 must have a gate arc, PrevArc(2)")
	}
}
