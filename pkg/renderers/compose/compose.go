// Package compose assembles the template context shared by the dialect
// renderers: it runs the codegen fragment generators for a model, applies
// section filtering, and nests the per-step fragments inside the time loop
// and thread guard.
package compose

import (
	"strings"

	"github.com/neuromass/kernelgen/pkg/codegen"
	"github.com/neuromass/kernelgen/pkg/kernel"
	"github.com/neuromass/kernelgen/pkg/render"
)

// Context builds the data a dialect kernel template consumes. When the
// signature section is excluded, the result is a fragment sheet: the
// selected fragments joined by blank lines, without the surrounding
// function, guard, or loop.
func Context(model kernel.Model, dialect codegen.Dialect, options render.RenderOptions) (map[string]any, error) {
	sections, err := render.NewSectionSet(options.Sections)
	if err != nil {
		return nil, err
	}

	ts := codegen.New(model, dialect)
	names := ts.Names()
	precision := options.EffectivePrecision()

	fragments := map[string]string{
		render.SectionConstants:   ts.CompileTimeParameters(),
		render.SectionUnpack:      ts.UnpackStates(precision, names.State),
		render.SectionCoupling:    ts.CouplingTerms(),
		render.SectionDerivatives: ts.Derivatives(names.Deriv),
		render.SectionUpdate:      ts.EulerUpdate(),
		render.SectionTrace:       ts.UpdateTrace(),
	}
	for name := range fragments {
		if !sections.Has(name) {
			fragments[name] = ""
		}
	}

	ctx := map[string]any{
		"dialect":           dialect.Name,
		"model_name":        model.Name,
		"model_description": model.Description,
		"full":              sections.Has(render.SectionSignature),
	}

	if sections.Has(render.SectionSignature) {
		kernelName := options.KernelName
		if kernelName == "" {
			kernelName = KernelName(model.Name)
		}
		stepBody := joinBlocks(
			fragments[render.SectionUnpack],
			fragments[render.SectionCoupling],
			joinLines(
				fragments[render.SectionDerivatives],
				fragments[render.SectionUpdate],
			),
			fragments[render.SectionTrace],
		)
		loop := ts.TimeLoop(names.Time, "0", names.NumSteps, stepBody)
		ctx["signature"] = ts.KernelSignature(kernelName, ts.SignatureParams(precision))
		ctx["lane_index"] = ts.LaneIndexDecl()
		ctx["constants"] = fragments[render.SectionConstants]
		ctx["body"] = ts.ThreadGuard(names.NumNodes, loop)
	} else {
		ordered := make([]string, 0, len(render.SectionOrder))
		for _, name := range render.SectionOrder {
			if name == render.SectionSignature {
				continue
			}
			ordered = append(ordered, fragments[name])
		}
		ctx["fragments"] = joinBlocks(ordered...)
	}

	return ctx, nil
}

// KernelName derives a C identifier for the kernel function from the model
// name.
func KernelName(modelName string) string {
	var b strings.Builder
	for _, r := range modelName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "model"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name + "_kernel"
}

// joinBlocks concatenates non-empty blocks with a blank line between them.
func joinBlocks(blocks ...string) string {
	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block == "" {
			continue
		}
		kept = append(kept, block)
	}
	return strings.Join(kept, "\n\n")
}

// joinLines concatenates non-empty blocks without a separating blank line.
func joinLines(blocks ...string) string {
	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block == "" {
			continue
		}
		kept = append(kept, block)
	}
	return strings.Join(kept, "\n")
}
