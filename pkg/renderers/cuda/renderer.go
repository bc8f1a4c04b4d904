// Package cuda renders kernel models into CUDA C source suitable for NVCC
// or NVRTC compilation. It is the default renderer.
package cuda

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/neuromass/kernelgen/pkg/codegen"
	"github.com/neuromass/kernelgen/pkg/kernel"
	"github.com/neuromass/kernelgen/pkg/render"
	rendertemplate "github.com/neuromass/kernelgen/pkg/render/template"
	gotemplate "github.com/neuromass/kernelgen/pkg/render/template/gotemplate"
	"github.com/neuromass/kernelgen/pkg/renderers/compose"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the CUDA renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("cuda renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "cuda"
}

func (r *Renderer) ContentType() string {
	return "text/x-cuda; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, model kernel.Model, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("cuda renderer: template renderer is nil")
	}

	data, err := compose.Context(model, codegen.CUDA(), options)
	if err != nil {
		return nil, fmt.Errorf("cuda renderer: compose fragments: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/kernel.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("cuda renderer: render template: %w", err)
	}
	return []byte(result), nil
}
