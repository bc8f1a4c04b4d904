package kernel

import (
	"github.com/neuromass/kernelgen/internal/model"
	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// Builder converts model descriptions into render-ready kernel models.
type Builder interface {
	Build(desc neuroml.ModelDescription) (Model, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	sanitizer func(string) string
}

// WithDescriptionSanitizer overrides the default markup stripper applied to
// free-text descriptions before they may be embedded in generated comments.
func WithDescriptionSanitizer(sanitizer func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.sanitizer = sanitizer
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.sanitizer != nil {
		internalOpts.Sanitizer = cfg.sanitizer
	}

	return builderAdapter{inner: model.New(internalOpts)}
}

// builderAdapter bridges the internal builder's model type to the public one.
type builderAdapter struct {
	inner *model.Builder
}

func (b builderAdapter) Build(desc neuroml.ModelDescription) (Model, error) {
	built, err := b.inner.Build(desc)
	if err != nil {
		return Model{}, err
	}
	return Model{
		Name:        built.Name,
		Description: built.Description,
		Constants:   toConstants(built.Constants),
		States:      toStates(built.States),
		Coupling:    toCoupling(built.Coupling),
		Metadata:    built.Metadata,
	}, nil
}

func toConstants(in []model.Constant) []Constant {
	out := make([]Constant, len(in))
	for i, c := range in {
		out[i] = Constant{Name: c.Name, Value: c.Value}
	}
	return out
}

func toStates(in []model.StateVariable) []StateVariable {
	out := make([]StateVariable, len(in))
	for i, sv := range in {
		out[i] = StateVariable{Name: sv.Name, Index: sv.Index, Derivative: sv.Derivative}
	}
	return out
}

func toCoupling(in []model.CouplingTerm) []CouplingTerm {
	if len(in) == 0 {
		return nil
	}
	out := make([]CouplingTerm, len(in))
	for i, ct := range in {
		out[i] = CouplingTerm{Name: ct.Name, Index: ct.Index}
	}
	return out
}
