package neuroml

import (
	"errors"
	"fmt"
)

// Source identifies where a model description document originated. Loaders
// operate on files, fs.FS entries, or URLs without leaking implementation
// details into the rest of the pipeline.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw description payload and its origin. Parsers decide
// how to decode the bytes (YAML, JSON, or HCL), so the wrapper stays
// format-agnostic.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("neuroml: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("neuroml: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the description payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Parameter is a named model parameter with one or more default values.
// Kernel generation consumes the first value; the full list is preserved so
// callers experimenting with per-node heterogeneity keep their data intact.
type Parameter struct {
	Name   string
	Values []float64
}

// ModelDescription is the caller-facing description of a neural-mass model:
// ordered parameters, ordered state variables, ordered coupling terms, and a
// derivative expression per state variable. Expressions are embedded verbatim
// into generated kernel source and must already be in target-language syntax.
type ModelDescription struct {
	Name           string
	Description    string
	Parameters     []Parameter
	StateVariables []string
	CouplingTerms  []string
	Derivatives    map[string]string
}

// NewModelDescription validates the minimal identity requirements and returns
// the description. Structural invariants (unique names, one derivative per
// state variable) are enforced by the kernel builder.
func NewModelDescription(name string, states []string) (ModelDescription, error) {
	if name == "" {
		return ModelDescription{}, errors.New("neuroml: model name is required")
	}
	if len(states) == 0 {
		return ModelDescription{}, errors.New("neuroml: at least one state variable is required")
	}
	return ModelDescription{
		Name:           name,
		StateVariables: append([]string(nil), states...),
		Derivatives:    make(map[string]string, len(states)),
	}, nil
}

// Clone creates a deep copy so pipeline stages can mutate defaults without
// touching the caller's description.
func (m ModelDescription) Clone() ModelDescription {
	cloned := m
	if len(m.Parameters) > 0 {
		cloned.Parameters = make([]Parameter, len(m.Parameters))
		for i, par := range m.Parameters {
			cloned.Parameters[i] = Parameter{
				Name:   par.Name,
				Values: append([]float64(nil), par.Values...),
			}
		}
	}
	if len(m.StateVariables) > 0 {
		cloned.StateVariables = append([]string(nil), m.StateVariables...)
	}
	if len(m.CouplingTerms) > 0 {
		cloned.CouplingTerms = append([]string(nil), m.CouplingTerms...)
	}
	if len(m.Derivatives) > 0 {
		cloned.Derivatives = make(map[string]string, len(m.Derivatives))
		for k, v := range m.Derivatives {
			cloned.Derivatives[k] = v
		}
	}
	return cloned
}

// DebugString renders a compact summary for logging without dumping the full
// derivative expressions.
func (m ModelDescription) DebugString() string {
	return fmt.Sprintf("model=%s,params=%d,states=%d,coupling=%d",
		m.Name, len(m.Parameters), len(m.StateVariables), len(m.CouplingTerms))
}
