package neuroml

import "context"

// Parser normalises description documents into ModelDescription values keyed
// by model name. The built-in implementation handles YAML and JSON payloads;
// an HCL parser is available for callers that keep simulation configuration
// in HCL.
type Parser interface {
	Models(ctx context.Context, doc Document) (map[string]ModelDescription, error)
}

// ParserOptions exposes parsing toggles.
type ParserOptions struct {
	// AllowEmptyDocuments gates documents that declare no models. Defaults to
	// false so a typo'd top-level key fails loudly.
	AllowEmptyDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithEmptyDocuments toggles acceptance of documents with no model entries.
func WithEmptyDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmptyDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
