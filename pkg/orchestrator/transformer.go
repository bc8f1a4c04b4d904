package orchestrator

import (
	"context"

	"github.com/neuromass/kernelgen/pkg/kernel"
)

// Transformer mutates a built kernel model before decorators run. Use it for
// cross-cutting rewrites such as renaming coupling terms or injecting extra
// constants.
type Transformer interface {
	Transform(ctx context.Context, model *kernel.Model) error
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(ctx context.Context, model *kernel.Model) error

// Transform implements Transformer.
func (f TransformerFunc) Transform(ctx context.Context, model *kernel.Model) error {
	return f(ctx, model)
}
