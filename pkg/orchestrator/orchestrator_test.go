package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	internalLoader "github.com/neuromass/kernelgen/internal/neuroml/loader"
	"github.com/neuromass/kernelgen/pkg/kernel"
	"github.com/neuromass/kernelgen/pkg/neuroml"
	"github.com/neuromass/kernelgen/pkg/orchestrator"
	"github.com/neuromass/kernelgen/pkg/render"
)

const yamlDocument = `
models:
  - name: Kuramoto
    description: Network of phase oscillators.
    parameters:
      - name: omega
        values: [60.0, 20.0]
    state_variables: [theta]
    coupling_terms: [c_pop0]
    derivatives:
      theta: "omega + c_pop0"
`

const hclDocument = `
model "Kuramoto" {
  state_variables = ["theta"]
  coupling_terms  = ["c_pop0"]

  parameter "omega" {
    values = [60.0]
  }

  derivative "theta" {
    expr = "omega + c_pop0"
  }
}
`

func yamlDoc(t *testing.T) *neuroml.Document {
	t.Helper()
	doc := neuroml.MustNewDocument(neuroml.SourceFromFS("models.yaml"), []byte(yamlDocument))
	return &doc
}

func TestGenerateFromDocument(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
		Renderer: "cuda",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	source := string(out)

	if !strings.Contains(source, "__global__ void Kuramoto_kernel(") {
		t.Fatalf("missing kernel signature:\n%s", source)
	}
	if !strings.Contains(source, "const float omega = 60.0f;") {
		t.Fatalf("missing parameter constant:\n%s", source)
	}
}

func TestGenerateThroughLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"models.yaml": &fstest.MapFile{Data: []byte(yamlDocument)},
	}
	gen := orchestrator.New(
		orchestrator.WithLoader(internalLoader.New(neuroml.NewLoaderOptions(neuroml.WithFileSystem(fsys)))),
	)

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Source: neuroml.SourceFromFS("models.yaml"),
		Model:  "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Kuramoto_kernel") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGenerateDefaultRenderer(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "__global__") {
		t.Fatalf("default renderer should be cuda:\n%s", out)
	}
}

func TestGenerateWithDefaultRendererOverride(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithDefaultRenderer("opencl"))

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "__kernel void Kuramoto_kernel(") {
		t.Fatalf("expected opencl output:\n%s", out)
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
		Renderer: "metal",
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "metal"`) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestGenerateUnknownModel(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Hopfield",
	})
	if err == nil || !strings.Contains(err.Error(), `model "Hopfield" not found`) {
		t.Fatalf("expected model lookup error, got %v", err)
	}
}

func TestGenerateRequiresModelName(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{Document: yamlDoc(t)})
	if err == nil || !strings.Contains(err.Error(), "model name is required") {
		t.Fatalf("expected model name error, got %v", err)
	}
}

func TestGenerateRequiresSourceOrDocument(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{Model: "Kuramoto"})
	if err == nil || !strings.Contains(err.Error(), "source or document is required") {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestGenerateParameterOverride(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithParameterOverrides(orchestrator.ParameterOverride{
		Model:     "Kuramoto",
		Parameter: "omega",
		Value:     42.0,
	}))

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "const float omega = 42.0f;") {
		t.Fatalf("override not applied:\n%s", out)
	}
	if strings.Contains(string(out), "const float omega = 60.0f;") {
		t.Fatalf("original value still present:\n%s", out)
	}
}

func TestGenerateParameterOverrideUnknownParameter(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithParameterOverrides(orchestrator.ParameterOverride{
		Parameter: "gamma",
		Value:     1.0,
	}))

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	})
	if err == nil || !strings.Contains(err.Error(), `override parameter "gamma"`) {
		t.Fatalf("expected override error, got %v", err)
	}
}

func TestGenerateParameterOverrideOtherModelSkipped(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithParameterOverrides(orchestrator.ParameterOverride{
		Model:     "Hopfield",
		Parameter: "gamma",
		Value:     1.0,
	}))

	if _, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	}); err != nil {
		t.Fatalf("override scoped to another model should be ignored: %v", err)
	}
}

func TestGenerateWithDecorator(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithDecorators(kernel.DecoratorFunc(func(m *kernel.Model) error {
		m.Constants = append([]kernel.Constant{{Name: "speed", Value: 1.0}}, m.Constants...)
		return nil
	})))

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "const float speed = 1.0f;") {
		t.Fatalf("decorator constant missing:\n%s", out)
	}
}

func TestGenerateWithTransformer(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithModelTransformer(
		orchestrator.TransformerFunc(func(_ context.Context, m *kernel.Model) error {
			m.Name = "Renamed"
			return nil
		}),
	))

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Renamed_kernel") {
		t.Fatalf("transformer rename missing:\n%s", out)
	}
}

func TestGenerateHCLDocuments(t *testing.T) {
	doc := neuroml.MustNewDocument(neuroml.SourceFromFS("models.hcl"), []byte(hclDocument))
	gen := orchestrator.New(orchestrator.WithHCLDocuments())

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: &doc,
		Model:    "Kuramoto",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Kuramoto_kernel") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGenerateRenderOptionsPassThrough(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: yamlDoc(t),
		Model:    "Kuramoto",
		RenderOptions: render.RenderOptions{
			Precision: "double",
			Sections:  []string{render.SectionUnpack},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	source := string(out)

	if strings.Contains(source, "__global__") {
		t.Fatalf("section subset should suppress the signature:\n%s", source)
	}
	if !strings.Contains(source, "double theta = state[0*n_node + id];") {
		t.Fatalf("precision not applied:\n%s", source)
	}
}

func TestGenerateNilContext(t *testing.T) {
	gen := orchestrator.New()

	var ctx context.Context
	if _, err := gen.Generate(ctx, orchestrator.Request{Document: yamlDoc(t), Model: "Kuramoto"}); err == nil {
		t.Fatal("expected error for nil context")
	}
}
