package orchestrator

import (
	"fmt"

	"github.com/neuromass/kernelgen/pkg/kernel"
)

// ParameterOverride replaces the compile-time value of a model parameter at
// generation time, without editing the description document. This is the
// hook for sweeping parameters across repeated generations.
type ParameterOverride struct {
	// Model restricts the override to one model. Empty applies to every
	// model the orchestrator generates.
	Model string

	// Parameter names the constant to replace. Overriding an undefined
	// parameter is an error so sweep typos fail loudly.
	Parameter string

	// Value becomes the emitted compile-time constant.
	Value float64
}

// WithParameterOverrides registers overrides applied to every built kernel
// model, in registration order.
func WithParameterOverrides(overrides ...ParameterOverride) Option {
	return func(o *Orchestrator) {
		if len(overrides) == 0 {
			return
		}
		o.overrides = append(o.overrides, overrides...)
	}
}

func (o *Orchestrator) applyOverrides(model *kernel.Model) error {
	for _, override := range o.overrides {
		if override.Model != "" && override.Model != model.Name {
			continue
		}
		if override.Parameter == "" {
			return fmt.Errorf("orchestrator: parameter override for model %q is missing a parameter name", model.Name)
		}
		if !model.SetConstant(override.Parameter, override.Value) {
			return fmt.Errorf("orchestrator: override parameter %q: not defined by model %q",
				override.Parameter, model.Name)
		}
	}
	return nil
}
