package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/neuromass/kernelgen/internal/ctxlog"
	"github.com/neuromass/kernelgen/pkg/neuroml"
)

// Loader implements neuroml.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level kernelgen package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ neuroml.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options neuroml.LoaderOptions) neuroml.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src neuroml.Source) (neuroml.Document, error) {
	if src == nil {
		return neuroml.Document{}, errors.New("neuroml loader: source is nil")
	}

	ctxlog.FromContext(ctx).Debug("loading model description",
		"kind", string(src.Kind()), "location", src.Location())

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case neuroml.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case neuroml.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case neuroml.SourceKindURL:
		if !l.allowHTTP {
			return neuroml.Document{}, errors.New("neuroml loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location())
	default:
		err = errors.New("neuroml loader: unsupported source kind")
	}
	if err != nil {
		return neuroml.Document{}, err
	}

	return neuroml.NewDocument(src, data)
}
