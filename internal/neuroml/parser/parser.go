package parser

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// Parser implements neuroml.Parser for YAML and JSON payloads. JSON is a
// subset of YAML, so a single decode path covers both.
type Parser struct {
	options neuroml.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ neuroml.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options neuroml.ParserOptions) neuroml.Parser {
	return &Parser{options: options}
}

// documentFile mirrors the on-disk description layout.
type documentFile struct {
	Models []modelFile `yaml:"models" json:"models"`
}

type modelFile struct {
	Name           string            `yaml:"name" json:"name"`
	Description    string            `yaml:"description" json:"description"`
	Parameters     []parameterFile   `yaml:"parameters" json:"parameters"`
	StateVariables []string          `yaml:"state_variables" json:"state_variables"`
	CouplingTerms  []string          `yaml:"coupling_terms" json:"coupling_terms"`
	Derivatives    map[string]string `yaml:"derivatives" json:"derivatives"`
}

type parameterFile struct {
	Name   string    `yaml:"name" json:"name"`
	Values []float64 `yaml:"values" json:"values"`
}

// Models converts a Document into a map keyed by model name.
func (p *Parser) Models(ctx context.Context, doc neuroml.Document) (map[string]neuroml.ModelDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("neuroml parser: document payload is empty")
	}

	var file documentFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("neuroml parser: decode document: %w", err)
	}

	if len(file.Models) == 0 && !p.options.AllowEmptyDocuments {
		return nil, errors.New("neuroml parser: document does not declare any models")
	}

	models := make(map[string]neuroml.ModelDescription, len(file.Models))
	for i, entry := range file.Models {
		if entry.Name == "" {
			return nil, fmt.Errorf("neuroml parser: model entry %d is missing a name", i)
		}
		if _, exists := models[entry.Name]; exists {
			return nil, fmt.Errorf("neuroml parser: duplicate model %q", entry.Name)
		}
		models[entry.Name] = toDescription(entry)
	}

	return models, nil
}

func toDescription(entry modelFile) neuroml.ModelDescription {
	desc := neuroml.ModelDescription{
		Name:           entry.Name,
		Description:    entry.Description,
		StateVariables: append([]string(nil), entry.StateVariables...),
		CouplingTerms:  append([]string(nil), entry.CouplingTerms...),
	}
	if len(entry.Parameters) > 0 {
		desc.Parameters = make([]neuroml.Parameter, len(entry.Parameters))
		for i, par := range entry.Parameters {
			desc.Parameters[i] = neuroml.Parameter{
				Name:   par.Name,
				Values: append([]float64(nil), par.Values...),
			}
		}
	}
	if len(entry.Derivatives) > 0 {
		desc.Derivatives = make(map[string]string, len(entry.Derivatives))
		for name, expr := range entry.Derivatives {
			desc.Derivatives[name] = expr
		}
	}
	return desc
}
