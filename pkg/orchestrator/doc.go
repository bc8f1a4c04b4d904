// Package orchestrator coordinates the full pipeline from model description
// document to generated kernel source.
package orchestrator
