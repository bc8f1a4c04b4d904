// Package hcl parses model description documents written in HCL, for callers
// that keep their simulation configuration in HCL alongside other
// infrastructure definitions.
package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// Parser implements neuroml.Parser for HCL payloads.
type Parser struct {
	options neuroml.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ neuroml.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options neuroml.ParserOptions) neuroml.Parser {
	return &Parser{options: options}
}

// hclDocument represents the top-level structure of a description file.
type hclDocument struct {
	Models []hclModel `hcl:"model,block"`
}

type hclModel struct {
	Name           string          `hcl:"name,label"`
	Description    string          `hcl:"description,optional"`
	Parameters     []hclParameter  `hcl:"parameter,block"`
	StateVariables []string        `hcl:"state_variables"`
	CouplingTerms  []string        `hcl:"coupling_terms,optional"`
	Derivatives    []hclDerivative `hcl:"derivative,block"`
}

type hclParameter struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values"`
}

type hclDerivative struct {
	State string `hcl:"state,label"`
	Expr  string `hcl:"expr"`
}

// Models decodes an HCL document into descriptions keyed by model name.
func (p *Parser) Models(ctx context.Context, doc neuroml.Document) (map[string]neuroml.ModelDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("neuroml hcl: document payload is empty")
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(raw, doc.Location())
	if diags.HasErrors() {
		return nil, fmt.Errorf("neuroml hcl: parse %s: %w", doc.Location(), diags)
	}

	var parsed hclDocument
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("neuroml hcl: decode %s: %w", doc.Location(), diags)
	}

	if len(parsed.Models) == 0 && !p.options.AllowEmptyDocuments {
		return nil, errors.New("neuroml hcl: document does not declare any models")
	}

	models := make(map[string]neuroml.ModelDescription, len(parsed.Models))
	for _, block := range parsed.Models {
		if _, exists := models[block.Name]; exists {
			return nil, fmt.Errorf("neuroml hcl: duplicate model %q", block.Name)
		}
		desc, err := toDescription(block)
		if err != nil {
			return nil, err
		}
		models[block.Name] = desc
	}

	return models, nil
}

func toDescription(block hclModel) (neuroml.ModelDescription, error) {
	desc := neuroml.ModelDescription{
		Name:           block.Name,
		Description:    block.Description,
		StateVariables: append([]string(nil), block.StateVariables...),
		CouplingTerms:  append([]string(nil), block.CouplingTerms...),
	}

	for _, par := range block.Parameters {
		values, err := decodeValues(block.Name, par)
		if err != nil {
			return neuroml.ModelDescription{}, err
		}
		desc.Parameters = append(desc.Parameters, neuroml.Parameter{
			Name:   par.Name,
			Values: values,
		})
	}

	if len(block.Derivatives) > 0 {
		desc.Derivatives = make(map[string]string, len(block.Derivatives))
		for _, dfun := range block.Derivatives {
			if _, exists := desc.Derivatives[dfun.State]; exists {
				return neuroml.ModelDescription{}, fmt.Errorf(
					"neuroml hcl: model %q: duplicate derivative block for %q", block.Name, dfun.State)
			}
			desc.Derivatives[dfun.State] = dfun.Expr
		}
	}

	return desc, nil
}

// decodeValues evaluates the parameter's values expression into a float
// slice. Expressions are static lists; no evaluation context is provided.
func decodeValues(model string, par hclParameter) ([]float64, error) {
	val, diags := par.Values.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("neuroml hcl: model %q: parameter %q values: %w", model, par.Name, diags)
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("neuroml hcl: model %q: parameter %q values must be a list", model, par.Name)
	}

	var out []float64
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		converted, err := convert.Convert(elem, cty.Number)
		if err != nil {
			return nil, fmt.Errorf("neuroml hcl: model %q: parameter %q values: %w", model, par.Name, err)
		}
		f, _ := converted.AsBigFloat().Float64()
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("neuroml hcl: model %q: parameter %q has no values", model, par.Name)
	}
	return out, nil
}
