// Package opencl renders kernel models into OpenCL C source. It shares the
// CUDA renderer's fragment pipeline; only the dialect syntax differs.
package opencl

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

// New constructs the OpenCL renderer applying any provided options.
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
			return nil, fmt.Errorf("opencl renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "opencl"
}

func (r *Renderer) ContentType() string {
	return "text/x-opencl-src; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, model kernel.Model, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("opencl renderer: template renderer is nil")
	}

	data, err := compose.Context(model, codegen.OpenCL(), options)
	if err != nil {
		return nil, fmt.Errorf("opencl renderer: compose fragments: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/kernel.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("opencl renderer: render template: %w", err)
	}
	return []byte(result), nil
}
