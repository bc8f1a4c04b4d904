// Package kernelgen generates GPU compute-kernel source for neural-mass
// brain-network simulators. A model description (parameters, state
// variables, coupling terms, derivative expressions) is loaded, validated,
// and rendered into CUDA or OpenCL source text for an external compiler
// toolchain. The package neither executes kernels nor integrates equations;
// it only emits source.
package kernelgen

import (
	"context"

	"github.com/neuromass/kernelgen/pkg/neuroml"
	"github.com/neuromass/kernelgen/pkg/orchestrator"
	"github.com/neuromass/kernelgen/pkg/render"
)

// RenderOptions describes per-request generation knobs (precision, kernel
// name, section subset); alias exported via the root package for
// convenience.
type RenderOptions = render.RenderOptions

// ParameterOverride replaces a model parameter's compile-time value at
// generation time.
type ParameterOverride = orchestrator.ParameterOverride

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSource loads the description document, builds a kernel model for
// the requested model name, and renders it using the named renderer. It is
// the simplest entry point for callers that just want kernel source.
func GenerateSource(ctx context.Context, source neuroml.Source, modelName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Model:    modelName,
		Renderer: rendererName,
	})
}

// GenerateSourceFromDocument renders kernel source using a pre-loaded
// document, bypassing the loader stage while still delegating to the
// orchestrator.
func GenerateSourceFromDocument(ctx context.Context, doc neuroml.Document, modelName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Model:    modelName,
		Renderer: rendererName,
	})
}

// WithParameterOverrides registers parameter overrides that can be passed to
// GenerateSource alongside other orchestrator options.
func WithParameterOverrides(overrides ...ParameterOverride) orchestrator.Option {
	return orchestrator.WithParameterOverrides(overrides...)
}
