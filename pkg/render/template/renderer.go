package template

import (
	"io"
)

// TemplateRenderer is the engine contract the dialect renderers rely on. The
// built-in implementation wraps pongo2; callers can inject any engine that
// satisfies this seam.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
