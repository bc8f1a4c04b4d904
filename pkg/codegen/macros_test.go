package codegen_test

import (
	"strings"
	"testing"

	"github.com/neuromass/kernelgen/pkg/codegen"
	"github.com/neuromass/kernelgen/pkg/kernel"
	"github.com/neuromass/kernelgen/pkg/testsupport"
)

// twoStateModel pins derivative expressions exactly so the emitted
// assignments can be asserted byte for byte.
func twoStateModel() kernel.Model {
	return kernel.Model{
		Name: "Linear",
		Constants: []kernel.Constant{
			{Name: "a", Value: 1.0},
			{Name: "b", Value: 2.5},
		},
		States: []kernel.StateVariable{
			{Name: "V", Index: 0, Derivative: "a-V"},
			{Name: "W", Index: 1, Derivative: "b-W"},
		},
		Coupling: []kernel.CouplingTerm{
			{Name: "c_pop0", Index: 0},
			{Name: "c_pop1", Index: 1},
		},
	}
}

func TestGet2D(t *testing.T) {
	if got := codegen.Get2D("state", "n", "i", "j"); got != "state[i*n + j]" {
		t.Fatalf("Get2D = %q, want %q", got, "state[i*n + j]")
	}
}

func TestDeclFloat(t *testing.T) {
	if got := codegen.DeclConstFloat("x", 2.5); got != "const float x = 2.5f;" {
		t.Fatalf("DeclConstFloat = %q, want %q", got, "const float x = 2.5f;")
	}
	if got := codegen.DeclFloat("x", 2.5); got != "float x = 2.5f;" {
		t.Fatalf("DeclFloat = %q, want %q", got, "float x = 2.5f;")
	}
}

func TestKernelSignature(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())
	got := ts.KernelSignature("Linear_kernel", "float *state")
	if got != "__global__ void Linear_kernel(float *state)" {
		t.Fatalf("KernelSignature = %q", got)
	}

	opencl := codegen.New(twoStateModel(), codegen.OpenCL())
	got = opencl.KernelSignature("Linear_kernel", "__global float *state")
	if got != "__kernel void Linear_kernel(__global float *state)" {
		t.Fatalf("KernelSignature (opencl) = %q", got)
	}
}

func TestThreadGuard(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())
	got := ts.ThreadGuard("n_node", "x += 1;")
	want := "if (id < n_node)\n{\n    x += 1;\n}"
	if got != want {
		t.Fatalf("ThreadGuard = %q, want %q", got, want)
	}
}

func TestTimeLoop(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())
	got := ts.TimeLoop("t", "0", "nt", "step();")
	want := "for (unsigned int t = 0; t < nt; t++)\n{\n    step();\n}"
	if got != want {
		t.Fatalf("TimeLoop = %q, want %q", got, want)
	}
}

func TestCompileTimeParameters(t *testing.T) {
	model := testsupport.MustBuildModel(t, testsupport.OscillatorDescription())
	ts := codegen.New(model, codegen.CUDA())

	lines := strings.Split(ts.CompileTimeParameters(), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 5 parameter constants plus pi, got %d lines", len(lines))
	}
	if lines[0] != "const float tau = 1.0f;" {
		t.Fatalf("first constant = %q", lines[0])
	}
	if lines[5] != "const float pi = 3.141592653589793f;" {
		t.Fatalf("pi constant = %q", lines[5])
	}
}

func TestUnpackStatesOrder(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())

	lines := strings.Split(ts.UnpackStates("float", "state"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one declaration per state variable, got %d", len(lines))
	}
	if lines[0] != "float V = state[0*n_node + id];" {
		t.Fatalf("first declaration = %q", lines[0])
	}
	if lines[1] != "float W = state[1*n_node + id];" {
		t.Fatalf("second declaration = %q", lines[1])
	}
}

func TestUnpackStatesPrecision(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())

	lines := strings.Split(ts.UnpackStates("double", "state"), "\n")
	if lines[0] != "double V = state[0*n_node + id];" {
		t.Fatalf("double declaration = %q", lines[0])
	}
}

func TestCouplingTerms(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())
	out := ts.CouplingTerms()

	if got := strings.Count(out, " = 0.0f;"); got != 2 {
		t.Fatalf("expected 2 zero initialisers, got %d", got)
	}
	if got := strings.Count(out, "*= cfun_a;"); got != 2 {
		t.Fatalf("expected 2 scalings, got %d", got)
	}
	if !strings.Contains(out, "float c_pop0 = 0.0f;") || !strings.Contains(out, "float c_pop1 = 0.0f;") {
		t.Fatalf("missing accumulator declarations:\n%s", out)
	}
	if !strings.Contains(out, "continue;") {
		t.Fatalf("zero-weight skip missing:\n%s", out)
	}
	if !strings.Contains(out, "c_pop0 += wij * state[0*n_node + j_node];") {
		t.Fatalf("first term accumulation missing:\n%s", out)
	}
	if !strings.Contains(out, "c_pop1 += wij * state[1*n_node + j_node];") {
		t.Fatalf("second term accumulation missing:\n%s", out)
	}

	// Term order must follow the model's coupling list.
	if strings.Index(out, "c_pop0 = 0.0f;") > strings.Index(out, "c_pop1 = 0.0f;") {
		t.Fatalf("initialiser order does not follow term order:\n%s", out)
	}
	if strings.Index(out, "c_pop0 *= cfun_a;") > strings.Index(out, "c_pop1 *= cfun_a;") {
		t.Fatalf("scaling order does not follow term order:\n%s", out)
	}
}

func TestCouplingTermsEmpty(t *testing.T) {
	model := twoStateModel()
	model.Coupling = nil
	ts := codegen.New(model, codegen.CUDA())
	if out := ts.CouplingTerms(); out != "" {
		t.Fatalf("expected no output for a model without coupling terms, got %q", out)
	}
}

func TestDerivativesOrder(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())

	lines := strings.Split(ts.Derivatives("dX"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one assignment per state variable, got %d", len(lines))
	}
	if lines[0] != "dX[0*n_node + id] = a-V;" {
		t.Fatalf("first assignment = %q", lines[0])
	}
	if lines[1] != "dX[1*n_node + id] = b-W;" {
		t.Fatalf("second assignment = %q", lines[1])
	}
}

func TestEulerUpdate(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())

	lines := strings.Split(ts.EulerUpdate(), "\n")
	if lines[0] != "state[0*n_node + id] += dt * dX[0*n_node + id];" {
		t.Fatalf("first update = %q", lines[0])
	}
	if lines[1] != "state[1*n_node + id] += dt * dX[1*n_node + id];" {
		t.Fatalf("second update = %q", lines[1])
	}
}

func TestUpdateTrace(t *testing.T) {
	ts := codegen.New(twoStateModel(), codegen.CUDA())

	lines := strings.Split(ts.UpdateTrace(), "\n")
	if lines[0] != "trace[t*2*n_node + 0*n_node + id] = state[0*n_node + id];" {
		t.Fatalf("first trace copy = %q", lines[0])
	}
	if lines[1] != "trace[t*2*n_node + 1*n_node + id] = state[1*n_node + id];" {
		t.Fatalf("second trace copy = %q", lines[1])
	}
}

func TestEmissionIsDeterministic(t *testing.T) {
	model := testsupport.MustBuildModel(t, testsupport.OscillatorDescription())

	first := codegen.New(model, codegen.CUDA())
	second := codegen.New(model, codegen.CUDA())

	pairs := [][2]string{
		{first.CompileTimeParameters(), second.CompileTimeParameters()},
		{first.UnpackStates("float", "state"), second.UnpackStates("float", "state")},
		{first.CouplingTerms(), second.CouplingTerms()},
		{first.Derivatives("dX"), second.Derivatives("dX")},
		{first.EulerUpdate(), second.EulerUpdate()},
		{first.UpdateTrace(), second.UpdateTrace()},
	}
	for i, pair := range pairs {
		if pair[0] != pair[1] {
			t.Fatalf("macro %d not deterministic:\n%q\nvs\n%q", i, pair[0], pair[1])
		}
	}
}

func TestCustomNames(t *testing.T) {
	names := codegen.DefaultNames()
	names.NodeID = "lane"
	names.NumNodes = "nodes"
	ts := codegen.New(twoStateModel(), codegen.CUDA(), codegen.WithNames(names))

	lines := strings.Split(ts.UnpackStates("float", "state"), "\n")
	if lines[0] != "float V = state[0*nodes + lane];" {
		t.Fatalf("renamed declaration = %q", lines[0])
	}

	guard := ts.ThreadGuard("nodes", "x;")
	if !strings.HasPrefix(guard, "if (lane < nodes)") {
		t.Fatalf("renamed guard = %q", guard)
	}
}
