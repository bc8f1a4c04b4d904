// Package template defines renderer-agnostic template interfaces. Dialect
// renderers compose kernel fragments through an engine satisfying
// TemplateRenderer so the templating backend stays swappable.
package template
