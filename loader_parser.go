package kernelgen

import (
	internalHCL "github.com/neuromass/kernelgen/internal/neuroml/hcl"
	internalLoader "github.com/neuromass/kernelgen/internal/neuroml/loader"
	internalParser "github.com/neuromass/kernelgen/internal/neuroml/parser"
	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...neuroml.LoaderOption) neuroml.Loader {
	cfg := neuroml.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a YAML/JSON parser backed by the internal
// implementation.
func NewParser(options ...neuroml.ParserOption) neuroml.Parser {
	cfg := neuroml.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewHCLParser constructs a parser for HCL description documents.
func NewHCLParser(options ...neuroml.ParserOption) neuroml.Parser {
	cfg := neuroml.NewParserOptions(options...)
	return internalHCL.New(cfg)
}
