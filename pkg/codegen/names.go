package codegen

// Names collects the ambient identifiers the generated fragments expect in
// scope at expansion time. Callers embedding fragments in nested contexts
// can rename entries to avoid shadowing.
type Names struct {
	// NumNodes is the node-count variable (network size).
	NumNodes string
	// NodeID is this lane's node index.
	NodeID string
	// Step is the integration step size.
	Step string
	// Time is the time-loop counter.
	Time string
	// NumSteps is the time-loop bound.
	NumSteps string
	// Weights is the flattened connectivity matrix.
	Weights string
	// State is the flattened per-node state buffer.
	State string
	// Deriv is the flattened derivative output buffer.
	Deriv string
	// Trace is the flattened (time, state variable, node) recording buffer.
	Trace string
	// CouplingScale is the global coupling coefficient.
	CouplingScale string
	// CouplingNode is the inner-loop counter over contributing nodes.
	CouplingNode string
}

// DefaultNames returns the conventional identifiers used by the embedded
// kernel templates.
func DefaultNames() Names {
	return Names{
		NumNodes:      "n_node",
		NodeID:        "id",
		Step:          "dt",
		Time:          "t",
		NumSteps:      "nt",
		Weights:       "weights",
		State:         "state",
		Deriv:         "dX",
		Trace:         "trace",
		CouplingScale: "cfun_a",
		CouplingNode:  "j_node",
	}
}
