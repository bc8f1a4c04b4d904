// Command kernelgen-scaffold interactively assembles a model description
// document and writes it as YAML, giving new models a valid starting point
// without hand-editing the schema.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Models []modelFile `yaml:"models"`
}

type modelFile struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description,omitempty"`
	Parameters     []parameterFile   `yaml:"parameters,omitempty"`
	StateVariables []string          `yaml:"state_variables"`
	CouplingTerms  []string          `yaml:"coupling_terms,omitempty"`
	Derivatives    map[string]string `yaml:"derivatives"`
}

type parameterFile struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

func main() {
	output := flag.String("output", "models.yaml", "path for the generated description document")
	flag.Parse()

	model, err := promptModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scaffold aborted: %v\n", err)
		os.Exit(1)
	}

	payload, err := yaml.Marshal(documentFile{Models: []modelFile{model}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode document: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write document: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote model description to %s\n", *output)
}

func promptModel() (modelFile, error) {
	var model modelFile

	if err := survey.AskOne(&survey.Input{
		Message: "Model name:",
		Help:    "Used as the document key and to derive the kernel function name.",
	}, &model.Name, survey.WithValidator(survey.Required)); err != nil {
		return modelFile{}, err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Description (optional):",
	}, &model.Description); err != nil {
		return modelFile{}, err
	}

	states, err := promptNameList("State variables (comma separated):", true)
	if err != nil {
		return modelFile{}, err
	}
	model.StateVariables = states

	model.Derivatives = make(map[string]string, len(states))
	for _, state := range states {
		var expr string
		if err := survey.AskOne(&survey.Input{
			Message: fmt.Sprintf("Derivative expression for %s:", state),
			Help:    "Target-language syntax, embedded verbatim into the kernel.",
		}, &expr, survey.WithValidator(survey.Required)); err != nil {
			return modelFile{}, err
		}
		model.Derivatives[state] = expr
	}

	coupling, err := promptNameList("Coupling terms (comma separated, empty for none):", false)
	if err != nil {
		return modelFile{}, err
	}
	model.CouplingTerms = coupling

	for {
		var add bool
		if err := survey.AskOne(&survey.Confirm{
			Message: "Add a parameter?",
			Default: len(model.Parameters) == 0,
		}, &add); err != nil {
			return modelFile{}, err
		}
		if !add {
			break
		}

		par, err := promptParameter()
		if err != nil {
			return modelFile{}, err
		}
		model.Parameters = append(model.Parameters, par)
	}

	return model, nil
}

func promptParameter() (parameterFile, error) {
	var par parameterFile

	if err := survey.AskOne(&survey.Input{
		Message: "Parameter name:",
	}, &par.Name, survey.WithValidator(survey.Required)); err != nil {
		return parameterFile{}, err
	}

	var raw string
	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("Default value(s) for %s (comma separated):", par.Name),
		Help:    "The first value becomes the compile-time constant.",
	}, &raw, survey.WithValidator(validNumberList)); err != nil {
		return parameterFile{}, err
	}

	for _, field := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return parameterFile{}, fmt.Errorf("parse value %q: %w", field, err)
		}
		par.Values = append(par.Values, v)
	}
	return par, nil
}

func promptNameList(message string, required bool) ([]string, error) {
	var raw string
	opts := []survey.AskOpt{}
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(&survey.Input{Message: message}, &raw, opts...); err != nil {
		return nil, err
	}

	var names []string
	for _, field := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if required && len(names) == 0 {
		return nil, errors.New("at least one name is required")
	}
	return names, nil
}

func validNumberList(ans any) error {
	raw, ok := ans.(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return errors.New("at least one numeric value is required")
	}
	for _, field := range strings.Split(raw, ",") {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return fmt.Errorf("%q is not a number", strings.TrimSpace(field))
		}
	}
	return nil
}
