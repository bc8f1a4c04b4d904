package kernelgen

import (
	"io/fs"

	cuda "github.com/neuromass/kernelgen/pkg/renderers/cuda"
)

// EmbeddedTemplates exposes the built-in CUDA renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	fsys := cuda.TemplatesFS()
	return fsys
}
