// Package model builds validated kernel models from caller-supplied
// descriptions. It enforces the structural invariants the codegen layer
// relies on: unique names within each list and exactly one derivative
// expression per state variable.
package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// PiConstantName is appended after the model's own parameters so generated
// expressions can reference pi without declaring it.
const PiConstantName = "pi"

// Constant mirrors kernel.Constant without importing it (the public package
// wraps this one).
type Constant struct {
	Name  string
	Value float64
}

// StateVariable mirrors kernel.StateVariable.
type StateVariable struct {
	Name       string
	Index      int
	Derivative string
}

// CouplingTerm mirrors kernel.CouplingTerm.
type CouplingTerm struct {
	Name  string
	Index int
}

// Model is the internal build result.
type Model struct {
	Name        string
	Description string
	Constants   []Constant
	States      []StateVariable
	Coupling    []CouplingTerm
	Metadata    map[string]string
}

// Options configures the builder.
type Options struct {
	// Sanitizer strips markup from free-text descriptions. Defaults to the
	// bluemonday-backed implementation.
	Sanitizer func(string) string
}

// Builder validates descriptions and produces render-ready models.
type Builder struct {
	sanitizer func(string) string
}

// New constructs a Builder from pre-resolved options.
func New(options Options) *Builder {
	sanitizer := options.Sanitizer
	if sanitizer == nil {
		sanitizer = SanitizeDescription
	}
	return &Builder{sanitizer: sanitizer}
}

// Build converts a description into a Model, enforcing the naming and
// derivative invariants. The input is not mutated.
func (b *Builder) Build(desc neuroml.ModelDescription) (Model, error) {
	if strings.TrimSpace(desc.Name) == "" {
		return Model{}, errors.New("kernel model: model name is required")
	}
	if len(desc.StateVariables) == 0 {
		return Model{}, fmt.Errorf("kernel model: model %q declares no state variables", desc.Name)
	}

	if err := checkUnique("parameter", parameterNames(desc.Parameters)); err != nil {
		return Model{}, err
	}
	if err := checkUnique("state variable", desc.StateVariables); err != nil {
		return Model{}, err
	}
	if err := checkUnique("coupling term", desc.CouplingTerms); err != nil {
		return Model{}, err
	}

	states, err := buildStates(desc)
	if err != nil {
		return Model{}, err
	}

	constants, err := buildConstants(desc)
	if err != nil {
		return Model{}, err
	}

	coupling := make([]CouplingTerm, len(desc.CouplingTerms))
	for i, name := range desc.CouplingTerms {
		coupling[i] = CouplingTerm{Name: name, Index: i}
	}

	return Model{
		Name:        desc.Name,
		Description: b.sanitizer(desc.Description),
		Constants:   constants,
		States:      states,
		Coupling:    coupling,
	}, nil
}

func buildStates(desc neuroml.ModelDescription) ([]StateVariable, error) {
	states := make([]StateVariable, len(desc.StateVariables))
	for i, name := range desc.StateVariables {
		expr, ok := desc.Derivatives[name]
		if !ok {
			return nil, fmt.Errorf("kernel model: model %q: state variable %q has no derivative expression",
				desc.Name, name)
		}
		if strings.TrimSpace(expr) == "" {
			return nil, fmt.Errorf("kernel model: model %q: state variable %q has an empty derivative expression",
				desc.Name, name)
		}
		states[i] = StateVariable{Name: name, Index: i, Derivative: expr}
	}

	if len(desc.Derivatives) > len(states) {
		extras := extraDerivatives(desc)
		return nil, fmt.Errorf("kernel model: model %q: derivatives declared for unknown state variables: %s",
			desc.Name, strings.Join(extras, ", "))
	}
	return states, nil
}

func buildConstants(desc neuroml.ModelDescription) ([]Constant, error) {
	constants := make([]Constant, 0, len(desc.Parameters)+1)
	for _, par := range desc.Parameters {
		if len(par.Values) == 0 {
			return nil, fmt.Errorf("kernel model: model %q: parameter %q has no values", desc.Name, par.Name)
		}
		// Only the first listed value becomes a compile-time constant;
		// per-node heterogeneity stays a caller concern.
		constants = append(constants, Constant{Name: par.Name, Value: par.Values[0]})
	}
	constants = append(constants, Constant{Name: PiConstantName, Value: math.Pi})
	return constants, nil
}

func parameterNames(params []neuroml.Parameter) []string {
	names := make([]string, len(params))
	for i, par := range params {
		names[i] = par.Name
	}
	return names
}

func checkUnique(kind string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("kernel model: empty %s name", kind)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("kernel model: duplicate %s %q", kind, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func extraDerivatives(desc neuroml.ModelDescription) []string {
	known := make(map[string]struct{}, len(desc.StateVariables))
	for _, name := range desc.StateVariables {
		known[name] = struct{}{}
	}

	var extras []string
	for name := range desc.Derivatives {
		if _, ok := known[name]; !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return extras
}
