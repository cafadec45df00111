package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces/gateways"
	"github.com/berrysetup/berrysetup/internal/domain/services"
)

// Cap on listing page size; release listings are far smaller
const maxPageBytes = 4 * 1024 * 1024

var (
	hrefRe        = regexp.MustCompile(`href="([^"]+)"`)
	absoluteURLRe = regexp.MustCompile(`https?://[^\s"'<>)]+`)
)

// PageSource resolves page-scan queries: providers that expose a raw
// listing page instead of a releases API. The extraction step scans the
// page text for download links; everything around it (probe, retry,
// pattern matching) is the resolver's shared skeleton. Each fetch is a
// single attempt, the retry policy lives in the resolver.
type PageSource struct {
	client    *http.Client
	userAgent string
}

// NewPageSource creates a page-scan source with a bounded fetch timeout
func NewPageSource() *PageSource {
	return &PageSource{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "berrysetup/1.0",
	}
}

// FetchAssets downloads the listing page and returns every download link
// found on it, in page order, as asset candidates
func (s *PageSource) FetchAssets(ctx context.Context, query entities.ReleaseQuery) ([]gateways.Asset, error) {
	base, err := url.Parse(query.Source)
	if err != nil || !strings.HasPrefix(query.Source, "http") {
		return nil, fmt.Errorf("source %q is not a listing page URL: %w", query.Source, services.ErrFetchMalformed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing page fetch failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing page returned HTTP %d: %w", resp.StatusCode, services.ErrFetchMalformed)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read listing page: %w", err)
	}

	return scanPage(string(body), base), nil
}

// scanPage extracts download link candidates from raw page text. Href
// attributes are resolved against the page URL; bare absolute URLs in the
// text are taken as-is. Page order is preserved and duplicates dropped.
func scanPage(page string, base *url.URL) []gateways.Asset {
	seen := make(map[string]bool)
	assets := make([]gateways.Asset, 0)

	add := func(raw string) {
		ref, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		link := resolved.String()
		if seen[link] {
			return
		}
		seen[link] = true
		assets = append(assets, gateways.Asset{
			Name:        candidateName(resolved),
			DownloadURL: link,
		})
	}

	for _, m := range hrefRe.FindAllStringSubmatch(page, -1) {
		add(m[1])
	}
	for _, m := range absoluteURLRe.FindAllString(page, -1) {
		add(m)
	}

	return assets
}

// candidateName derives the filename the asset pattern is matched
// against. Mirror-style links ending in "/download" name the preceding
// path segment.
func candidateName(u *url.URL) string {
	p := strings.TrimSuffix(u.Path, "/")
	p = strings.TrimSuffix(p, "/download")
	return path.Base(p)
}
