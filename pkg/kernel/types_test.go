package kernel_test

import (
	"testing"

	"github.com/neuromass/kernelgen/pkg/kernel"
)

func sampleModel() kernel.Model {
	return kernel.Model{
		Name: "Oscillator",
		Constants: []kernel.Constant{
			{Name: "tau", Value: 1.0},
		},
		States: []kernel.StateVariable{
			{Name: "V", Index: 0, Derivative: "W"},
			{Name: "W", Index: 1, Derivative: "-V"},
		},
	}
}

func TestNumStates(t *testing.T) {
	if got := sampleModel().NumStates(); got != 2 {
		t.Fatalf("NumStates = %d", got)
	}
}

func TestStateIndex(t *testing.T) {
	m := sampleModel()

	idx, ok := m.StateIndex("W")
	if !ok || idx != 1 {
		t.Fatalf("StateIndex(W) = %d, %v", idx, ok)
	}
	if _, ok := m.StateIndex("Z"); ok {
		t.Fatal("StateIndex reported an unknown variable")
	}
}

func TestSetConstant(t *testing.T) {
	m := sampleModel()

	if !m.SetConstant("tau", 3.0) {
		t.Fatal("SetConstant failed for a defined constant")
	}
	if m.Constants[0].Value != 3.0 {
		t.Fatalf("constant not updated: %+v", m.Constants[0])
	}
	if m.SetConstant("gamma", 1.0) {
		t.Fatal("SetConstant reported success for an undefined constant")
	}
}
