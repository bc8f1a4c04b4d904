package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/neuromass/kernelgen/internal/neuroml/loader"
	"github.com/neuromass/kernelgen/pkg/neuroml"
)

const payload = "models:\n  - name: Kuramoto\n    state_variables: [theta]\n"

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"models.yaml": &fstest.MapFile{Data: []byte(payload)},
	}
	l := loader.New(neuroml.NewLoaderOptions(neuroml.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), neuroml.SourceFromFS("models.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
	if doc.Location() != "models.yaml" {
		t.Fatalf("location = %q", doc.Location())
	}
}

func TestLoadFromFSWithoutFilesystem(t *testing.T) {
	l := loader.New(neuroml.NewLoaderOptions())

	_, err := l.Load(context.Background(), neuroml.SourceFromFS("models.yaml"))
	if err == nil || !strings.Contains(err.Error(), "filesystem is not configured") {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(neuroml.NewLoaderOptions())

	doc, err := l.Load(context.Background(), neuroml.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	l := loader.New(neuroml.NewLoaderOptions())

	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := l.Load(context.Background(), neuroml.SourceFromFile(path)); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	l := loader.New(neuroml.NewLoaderOptions())

	_, err := l.Load(context.Background(), neuroml.SourceFromURL("http://example.com/models.yaml"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	l := loader.New(neuroml.NewLoaderOptions(neuroml.WithHTTPClient(srv.Client())))

	doc, err := l.Load(context.Background(), neuroml.SourceFromURL(srv.URL+"/models.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
}

func TestLoadHTTPNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := loader.New(neuroml.NewLoaderOptions(neuroml.WithHTTPClient(srv.Client())))

	_, err := l.Load(context.Background(), neuroml.SourceFromURL(srv.URL+"/models.yaml"))
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoadNilSource(t *testing.T) {
	l := loader.New(neuroml.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
