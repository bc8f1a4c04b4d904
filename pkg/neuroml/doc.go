// Package neuroml defines the public contracts for neural-mass model
// descriptions: where a description document lives (Source), its raw payload
// (Document), and how it is fetched (Loader) and parsed (Parser) into
// ModelDescription values that the kernel builder consumes.
package neuroml
