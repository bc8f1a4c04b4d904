package render

import (
	"context"

	"github.com/neuromass/kernelgen/pkg/kernel"
)

// Renderer converts a kernel model into generated source bytes for one
// target dialect (CUDA, OpenCL, or a caller-supplied target).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, model kernel.Model, options RenderOptions) ([]byte, error)
}
