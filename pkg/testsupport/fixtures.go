// Package testsupport bundles fixtures and comparison helpers shared by the
// contract tests across packages.
package testsupport

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neuromass/kernelgen/pkg/kernel"
	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// LoadDocument reads a fixture and builds a neuroml.Document using a file
// source. Testing helpers fail fast to keep contract tests concise.
func LoadDocument(t *testing.T, path string) neuroml.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (neuroml.Document, error) {
	if path == "" {
		return neuroml.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return neuroml.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := neuroml.NewDocument(neuroml.SourceFromFile(path), data)
	if err != nil {
		return neuroml.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// CompareGolden diffs two values, returning an empty string when they match.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// OscillatorDescription returns the two-state generic oscillator used
// throughout the tests: the smallest model exercising parameters, coupling,
// and per-state derivative expressions together.
func OscillatorDescription() neuroml.ModelDescription {
	return neuroml.ModelDescription{
		Name:        "Oscillator",
		Description: "Generic planar oscillator with cubic nonlinearity.",
		Parameters: []neuroml.Parameter{
			{Name: "tau", Values: []float64{1.0}},
			{Name: "a", Values: []float64{-2.0}},
			{Name: "b", Values: []float64{-10.0}},
			{Name: "c", Values: []float64{0.0}},
			{Name: "I", Values: []float64{0.0}},
		},
		StateVariables: []string{"V", "W"},
		CouplingTerms:  []string{"c_pop0"},
		Derivatives: map[string]string{
			"V": "tau * (W - powf(V, 3) + 3.0f * powf(V, 2) + I + c_pop0)",
			"W": "(a + b * V + c * powf(V, 2) - W) / tau",
		},
	}
}

// KuramotoDescription returns a single-state phase oscillator, the minimal
// model with one coupling term.
func KuramotoDescription() neuroml.ModelDescription {
	return neuroml.ModelDescription{
		Name: "Kuramoto",
		Parameters: []neuroml.Parameter{
			{Name: "omega", Values: []float64{60.0, 20.0}},
		},
		StateVariables: []string{"theta"},
		CouplingTerms:  []string{"c_pop0"},
		Derivatives: map[string]string{
			"theta": "omega + c_pop0",
		},
	}
}

// MustBuildModel builds a kernel model from a description, failing the test
// on validation errors.
func MustBuildModel(t *testing.T, desc neuroml.ModelDescription) kernel.Model {
	t.Helper()

	built, err := kernel.NewBuilder().Build(desc)
	if err != nil {
		t.Fatalf("build kernel model: %v", err)
	}
	return built
}
