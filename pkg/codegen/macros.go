package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/neuromass/kernelgen/pkg/kernel"
)

const bodyIndent = 4

// Option customises a TemplateSet before construction.
type Option func(*TemplateSet)

// WithNames overrides the ambient identifiers used by the fragments.
func WithNames(names Names) Option {
	return func(ts *TemplateSet) {
		ts.names = names
	}
}

// TemplateSet binds a kernel model to a dialect and exposes the composable
// fragment generators. A TemplateSet is immutable after construction and
// safe for concurrent use.
type TemplateSet struct {
	model   kernel.Model
	dialect Dialect
	names   Names
}

// New constructs a TemplateSet for the given model and dialect.
func New(model kernel.Model, dialect Dialect, options ...Option) *TemplateSet {
	ts := &TemplateSet{
		model:   model,
		dialect: dialect,
		names:   DefaultNames(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(ts)
	}
	return ts
}

// Model returns the bound kernel model.
func (ts *TemplateSet) Model() kernel.Model {
	return ts.model
}

// Dialect returns the bound dialect.
func (ts *TemplateSet) Dialect() Dialect {
	return ts.dialect
}

// Names returns the ambient identifiers in use.
func (ts *TemplateSet) Names() Names {
	return ts.names
}

// Get2D emits a flattened row-major 2D index expression. Pure syntax; the
// arguments are embedded verbatim.
func Get2D(src, n, i, j string) string {
	return fmt.Sprintf("%s[%s*%s + %s]", src, i, n, j)
}

// DeclFloat emits a single-precision declaration with an explicit literal
// suffix.
func DeclFloat(name string, value float64) string {
	return fmt.Sprintf("float %s = %s;", name, FloatLiteral(value))
}

// DeclConstFloat emits a constant single-precision declaration.
func DeclConstFloat(name string, value float64) string {
	return fmt.Sprintf("const float %s = %s;", name, FloatLiteral(value))
}

// KernelSignature emits the kernel function header for the bound dialect.
// The parameter list is embedded verbatim.
func (ts *TemplateSet) KernelSignature(name, params string) string {
	return fmt.Sprintf("%s void %s(%s)", ts.dialect.Qualifier, name, params)
}

// SignatureParams emits the conventional parameter list matching the
// ambient names: grid dimensions, step size, coupling coefficient, and the
// four flattened buffers.
func (ts *TemplateSet) SignatureParams(precision string) string {
	n := ts.names
	ptr := ts.dialect.GlobalPtr
	return strings.Join([]string{
		fmt.Sprintf("unsigned int %s", n.NumNodes),
		fmt.Sprintf("unsigned int %s", n.NumSteps),
		fmt.Sprintf("%s %s", precision, n.Step),
		fmt.Sprintf("%s %s", precision, n.CouplingScale),
		fmt.Sprintf("%s%s *%s", ptr, precision, n.Weights),
		fmt.Sprintf("%s%s *%s", ptr, precision, n.State),
		fmt.Sprintf("%s%s *%s", ptr, precision, n.Deriv),
		fmt.Sprintf("%s%s *%s", ptr, precision, n.Trace),
	}, ", ")
}

// LaneIndexDecl emits the declaration deriving this lane's node id.
func (ts *TemplateSet) LaneIndexDecl() string {
	return fmt.Sprintf("const unsigned int %s = %s;", ts.names.NodeID, ts.dialect.LaneIndex)
}

// ThreadGuard wraps body in a conditional so it executes only when the lane
// index is below limit. No else branch; a limit of zero or below is the
// caller's responsibility.
func (ts *TemplateSet) ThreadGuard(limit, body string) string {
	return fmt.Sprintf("if (%s < %s)\n{\n%s\n}", ts.names.NodeID, limit, Indent(body, bodyIndent))
}

// TimeLoop emits a counting loop from start to stop (exclusive) embedding
// body each iteration. The loop variable is caller-named to avoid shadowing
// in nested contexts.
func (ts *TemplateSet) TimeLoop(varName, start, stop, body string) string {
	return fmt.Sprintf("for (unsigned int %s = %s; %s < %s; %s++)\n{\n%s\n}",
		varName, start, varName, stop, varName, Indent(body, bodyIndent))
}

// CompileTimeParameters emits one constant declaration per model parameter,
// in parameter list order, using each parameter's first listed default
// value. The trailing constant is pi.
func (ts *TemplateSet) CompileTimeParameters() string {
	lines := make([]string, len(ts.model.Constants))
	for i, c := range ts.model.Constants {
		lines[i] = DeclConstFloat(c.Name, c.Value)
	}
	return strings.Join(lines, "\n")
}

// UnpackStates emits one local declaration per state variable, in list
// order, reading the current value from the flattened state buffer at that
// variable's row and this node's column.
func (ts *TemplateSet) UnpackStates(precision, statesName string) string {
	n := ts.names
	lines := make([]string, len(ts.model.States))
	for i, sv := range ts.model.States {
		ref := Get2D(statesName, n.NumNodes, strconv.Itoa(sv.Index), n.NodeID)
		lines[i] = fmt.Sprintf("%s %s = %s;", precision, sv.Name, ref)
	}
	return strings.Join(lines, "\n")
}

// CouplingTerms emits a zero-initialised accumulator per coupling term, a
// single loop over all nodes accumulating weight-by-state products into
// each accumulator, and a post-loop scaling by the coupling coefficient.
// Zero-weight edges are skipped; excluded edges contribute exactly zero
// either way, so the skip is purely a bandwidth saving. Term m reads state
// row m.
func (ts *TemplateSet) CouplingTerms() string {
	if len(ts.model.Coupling) == 0 {
		return ""
	}

	n := ts.names
	var b strings.Builder

	for _, ct := range ts.model.Coupling {
		b.WriteString(DeclFloat(ct.Name, 0))
		b.WriteString("\n")
	}

	wij := Get2D(n.Weights, n.NumNodes, n.CouplingNode, n.NodeID)
	var body strings.Builder
	body.WriteString(fmt.Sprintf("float wij = %s;\n", wij))
	body.WriteString("if (wij == 0.0f)\n    continue;")
	for _, ct := range ts.model.Coupling {
		ref := Get2D(n.State, n.NumNodes, strconv.Itoa(ct.Index), n.CouplingNode)
		body.WriteString(fmt.Sprintf("\n%s += wij * %s;", ct.Name, ref))
	}

	b.WriteString(ts.TimeLoop(n.CouplingNode, "0", n.NumNodes, body.String()))

	for _, ct := range ts.model.Coupling {
		b.WriteString(fmt.Sprintf("\n%s *= %s;", ct.Name, n.CouplingScale))
	}

	return b.String()
}

// Derivatives emits one assignment per state variable, in list order,
// writing that variable's derivative expression into the output buffer at
// the matching row.
func (ts *TemplateSet) Derivatives(out string) string {
	n := ts.names
	lines := make([]string, len(ts.model.States))
	for i, sv := range ts.model.States {
		ref := Get2D(out, n.NumNodes, strconv.Itoa(sv.Index), n.NodeID)
		lines[i] = fmt.Sprintf("%s = %s;", ref, sv.Derivative)
	}
	return strings.Join(lines, "\n")
}

// EulerUpdate emits the in-place explicit-Euler update per state variable
// at matching flattened offsets.
func (ts *TemplateSet) EulerUpdate() string {
	n := ts.names
	lines := make([]string, len(ts.model.States))
	for i, sv := range ts.model.States {
		idx := strconv.Itoa(sv.Index)
		stateRef := Get2D(n.State, n.NumNodes, idx, n.NodeID)
		derivRef := Get2D(n.Deriv, n.NumNodes, idx, n.NodeID)
		lines[i] = fmt.Sprintf("%s += %s * %s;", stateRef, n.Step, derivRef)
	}
	return strings.Join(lines, "\n")
}

// UpdateTrace emits a copy of each state variable's current value into the
// trace buffer, flattened as (time, state variable, node).
func (ts *TemplateSet) UpdateTrace() string {
	n := ts.names
	numStates := len(ts.model.States)
	lines := make([]string, numStates)
	for i, sv := range ts.model.States {
		idx := strconv.Itoa(sv.Index)
		stateRef := Get2D(n.State, n.NumNodes, idx, n.NodeID)
		traceRef := fmt.Sprintf("%s[%s*%d*%s + %s*%s + %s]",
			n.Trace, n.Time, numStates, n.NumNodes, idx, n.NumNodes, n.NodeID)
		lines[i] = fmt.Sprintf("%s = %s;", traceRef, stateRef)
	}
	return strings.Join(lines, "\n")
}
