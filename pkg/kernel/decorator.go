package kernel

// Decorator mutates a built kernel model before rendering. The orchestrator
// runs decorators in registration order; returning an error aborts the
// pipeline.
type Decorator interface {
	Decorate(model *Model) error
}

// DecoratorFunc adapts a plain function to the Decorator interface.
type DecoratorFunc func(model *Model) error

// Decorate implements Decorator.
func (f DecoratorFunc) Decorate(model *Model) error {
	return f(model)
}
