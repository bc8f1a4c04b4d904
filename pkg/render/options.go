package render

// Default precision keyword used when RenderOptions omits one.
const DefaultPrecision = "float"

// RenderOptions describe per-request data renderers use to customise their
// output without mutating the kernel model pipeline.
type RenderOptions struct {
	// Precision selects the floating-point keyword for state locals and
	// buffer parameters ("float" or "double"). Numeric literals keep their
	// single-precision suffix regardless; constants are declared float.
	Precision string

	// KernelName overrides the generated kernel function name. Empty means
	// the renderer derives one from the model name.
	KernelName string

	// Sections restricts output to the named kernel sections (see the
	// Section* constants). Empty means the full kernel.
	Sections []string
}

// EffectivePrecision resolves the precision keyword, falling back to the
// default when unset.
func (o RenderOptions) EffectivePrecision() string {
	if o.Precision == "" {
		return DefaultPrecision
	}
	return o.Precision
}
