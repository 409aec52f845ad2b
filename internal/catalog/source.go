package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultTimeout bounds a single HTTP fetch when the source has no client.
const DefaultTimeout = 10 * time.Second

// maxPayload caps how much of a response body is read.
const maxPayload = 8 << 20

// Source yields the catalog from one location.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Fetch returns the games held by the source. An empty result is reported
	// as ErrEmptyCatalog. Skipped entries are reported as a *RecordError
	// returned with the games that did decode.
	Fetch(ctx context.Context) ([]Game, error)
}

// HTTPSource fetches the catalog with a GET request that bypasses caches.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Fetch(ctx context.Context) ([]Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %d", s.URL, ErrStatus, res.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.URL, err)
	}
	return decodeNonEmpty(body)
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeNonEmpty(body)
}

// decodeNonEmpty decodes body, keeping a *RecordError next to the games that
// did decode.
func decodeNonEmpty(body []byte) ([]Game, error) {
	games, err := Decode(body)
	var recErr *RecordError
	if err != nil && !errors.As(err, &recErr) {
		return nil, err
	}
	if len(games) == 0 {
		if recErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmptyCatalog, recErr)
		}
		return nil, ErrEmptyCatalog
	}
	return games, err
}

// DefaultSources returns the fallback chain for a site rooted at base: the
// catalog file relative to base, the catalog file at the site root, then the
// API endpoint.
func DefaultSources(base string, client *http.Client) ([]Source, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	paths := []string{"games.json", "/games.json", "/api/games"}
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		ref := &url.URL{Path: p}
		sources = append(sources, HTTPSource{URL: u.ResolveReference(ref).String(), Client: client})
	}
	return sources, nil
}
