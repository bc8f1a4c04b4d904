package kernel

// Constant is a compile-time constant emitted into the kernel preamble. The
// builder produces one per model parameter (first listed default value) plus
// a trailing entry for pi.
type Constant struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StateVariable couples a state variable's name, its stable list index, and
// its derivative expression. Index is the row offset into the flattened
// state arrays and must match across every generated fragment.
type StateVariable struct {
	Name       string `json:"name"`
	Index      int    `json:"index"`
	Derivative string `json:"derivative"`
}

// CouplingTerm names an accumulator aggregating weighted contributions from
// all other nodes. Index selects the state row the term reads from.
type CouplingTerm struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// Model is the top-level representation renderers consume.
type Model struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Constants   []Constant        `json:"constants"`
	States      []StateVariable   `json:"states"`
	Coupling    []CouplingTerm    `json:"coupling,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NumStates returns the state count, which sizes the per-node rows of the
// state, derivative, and trace buffers.
func (m Model) NumStates() int {
	return len(m.States)
}

// StateIndex reports the index for a named state variable.
func (m Model) StateIndex(name string) (int, bool) {
	for _, sv := range m.States {
		if sv.Name == name {
			return sv.Index, true
		}
	}
	return 0, false
}

// SetConstant replaces the value of a named constant in place, reporting
// whether the constant exists. Used by parameter overrides.
func (m *Model) SetConstant(name string, value float64) bool {
	for i := range m.Constants {
		if m.Constants[i].Name == name {
			m.Constants[i].Value = value
			return true
		}
	}
	return false
}
