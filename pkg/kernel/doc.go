// Package kernel defines the render-ready kernel model: the validated,
// index-stable view of a neural-mass model description that renderers and the
// codegen template set consume. List positions define memory layout offsets
// in the generated source, so ordering is part of the contract.
package kernel
