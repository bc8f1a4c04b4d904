package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	kernelgen "github.com/neuromass/kernelgen"
	"github.com/neuromass/kernelgen/internal/ctxlog"
	"github.com/neuromass/kernelgen/pkg/neuroml"
	"github.com/neuromass/kernelgen/pkg/orchestrator"
	"github.com/neuromass/kernelgen/pkg/render"
)

func main() {
	modelName := flag.String("model", "", "model name to generate a kernel for")
	renderer := flag.String("renderer", "cuda", "renderer to use (cuda, opencl)")
	precision := flag.String("precision", "float", "floating point keyword (float, double)")
	output := flag.String("output", "", "output file (stdout if empty)")
	source := flag.String("source", "models.yaml", "description document path or URL")
	hclInput := flag.Bool("hcl", false, "treat the source document as HCL")
	sections := flag.String("sections", "", "comma-separated kernel sections to emit (default all)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if *modelName == "" {
		logger.Error("missing required -model flag")
		os.Exit(1)
	}

	src := parseSource(*source)
	if src == nil {
		logger.Error("invalid source", "source", *source)
		os.Exit(1)
	}

	opts := []orchestrator.Option{
		orchestrator.WithLoader(kernelgen.NewLoader(neuroml.WithDefaultSources())),
	}
	if *hclInput {
		opts = append(opts, orchestrator.WithHCLDocuments())
	}

	gen := orchestrator.New(opts...)

	req := orchestrator.Request{
		Source:   src,
		Model:    *modelName,
		Renderer: *renderer,
		RenderOptions: render.RenderOptions{
			Precision: *precision,
			Sections:  splitSections(*sections),
		},
	}

	kernelSource, err := gen.Generate(ctx, req)
	if err != nil {
		logger.Error("failed to generate kernel source", "error", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, kernelSource, 0o644); err != nil {
			logger.Error("failed to write output", "path", *output, "error", err)
			os.Exit(1)
		}
		logger.Info("kernel source written", "path", *output, "model", *modelName, "renderer", *renderer)
	} else {
		fmt.Println(string(kernelSource))
	}
}

func parseSource(raw string) neuroml.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return neuroml.SourceFromURL(path)
	}
	return neuroml.SourceFromFile(path)
}

func splitSections(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
