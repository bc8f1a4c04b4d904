package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

func loadHTTP(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		return nil, errors.New("neuroml loader: http client is not configured")
	}
	if rawURL == "" {
		return nil, errors.New("neuroml loader: url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("neuroml loader: build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neuroml loader: fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("neuroml loader: fetch %q: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("neuroml loader: read response: %w", err)
	}
	return data, nil
}
