package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalHCL "github.com/neuromass/kernelgen/internal/neuroml/hcl"
	internalLoader "github.com/neuromass/kernelgen/internal/neuroml/loader"
	internalParser "github.com/neuromass/kernelgen/internal/neuroml/parser"
	"github.com/neuromass/kernelgen/pkg/kernel"
	"github.com/neuromass/kernelgen/pkg/neuroml"
	"github.com/neuromass/kernelgen/pkg/render"
	"github.com/neuromass/kernelgen/pkg/renderers/cuda"
	"github.com/neuromass/kernelgen/pkg/renderers/opencl"
)

const defaultRendererName = "cuda"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom description loader.
func WithLoader(loader neuroml.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom description parser.
func WithParser(parser neuroml.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithHCLDocuments switches the parser to the HCL implementation for callers
// whose description documents are HCL files.
func WithHCLDocuments() Option {
	return func(o *Orchestrator) {
		o.parser = internalHCL.New(neuroml.NewParserOptions())
	}
}

// WithBuilder injects a custom kernel model builder.
func WithBuilder(builder kernel.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithModelTransformer registers a Transformer that can mutate kernel models
// after building but before decorators run.
func WithModelTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the built kernel
// model before rendering.
func WithDecorators(decorators ...kernel.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator coordinates loading, parsing, building, and rendering. It
// applies sensible defaults (YAML parser, CUDA renderer, embedded templates)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	loader          neuroml.Loader
	parser          neuroml.Parser
	builder         kernel.Builder
	registry        *render.Registry
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
	overrides       []ParameterOverride
	decorators      []kernel.Decorator
	transformer     Transformer
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate kernel source for one
// model.
type Request struct {
	// Source identifies where the description document lives. Optional when
	// Document is supplied.
	Source neuroml.Source

	// Document allows callers to bypass the loader when they already have a
	// loaded payload.
	Document *neuroml.Document

	// Model selects which model in the document to generate a kernel for.
	Model string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as precision or a
	// section subset. When omitted, renderers receive the zero-value struct.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → parser → model builder → renderer sequence
// and returns the generated source bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	if req.Model == "" {
		return nil, errors.New("orchestrator: model name is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	models, err := o.parser.Models(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse models: %w", err)
	}

	desc, ok := models[req.Model]
	if !ok {
		return nil, fmt.Errorf("orchestrator: model %q not found", req.Model)
	}

	built, err := o.builder.Build(desc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build kernel model: %w", err)
	}

	if err := o.applyOverrides(&built); err != nil {
		return nil, err
	}
	if err := o.applyTransformer(ctx, &built); err != nil {
		return nil, err
	}
	if err := o.applyDecorators(&built); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, built, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (neuroml.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return neuroml.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return neuroml.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(model *kernel.Model) error {
	if len(o.decorators) == 0 || model == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(model); err != nil {
			return fmt.Errorf("orchestrator: decorate model: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, model *kernel.Model) error {
	if o.transformer == nil || model == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, model); err != nil {
		return fmt.Errorf("orchestrator: transform model: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(neuroml.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(neuroml.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = kernel.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registerBuiltins()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func (o *Orchestrator) registerBuiltins() {
	cudaRenderer, err := cuda.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(cudaRenderer)

	openclRenderer, err := opencl.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: opencl renderer: %w", err)
		return
	}
	o.registry.MustRegister(openclRenderer)
}
