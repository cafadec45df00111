package gateways

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/patrickmn/go-cache"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces/gateways"
	"github.com/berrysetup/berrysetup/internal/domain/services"
)

// latestRelease is the cached shape of one latest-release lookup
type latestRelease struct {
	Tag    string
	Assets []gateways.Asset
}

// GitHubSource resolves github-release queries through the GitHub API.
// Latest-release lookups are memoized per repository so a catalog with
// several entries on the same repository fetches it once per run.
type GitHubSource struct {
	client *github.Client
	cache  *cache.Cache
}

// NewGitHubSource creates a GitHub release source. The client may carry
// an OAuth2 token for higher rate limits.
func NewGitHubSource(client *github.Client) *GitHubSource {
	return &GitHubSource{
		client: client,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// FetchAssets returns the asset listing of the latest release, in the
// order the API reports it
func (s *GitHubSource) FetchAssets(ctx context.Context, query entities.ReleaseQuery) ([]gateways.Asset, error) {
	release, err := s.latest(ctx, query.Source)
	if err != nil {
		return nil, err
	}
	return release.Assets, nil
}

// LatestTag returns the tag name of the latest release
func (s *GitHubSource) LatestTag(ctx context.Context, source string) (string, error) {
	release, err := s.latest(ctx, source)
	if err != nil {
		return "", err
	}
	return release.Tag, nil
}

func (s *GitHubSource) latest(ctx context.Context, source string) (*latestRelease, error) {
	if cached, ok := s.cache.Get(source); ok {
		return cached.(*latestRelease), nil
	}

	owner, repo, found := strings.Cut(source, "/")
	if !found || owner == "" || repo == "" {
		return nil, fmt.Errorf("source %q is not in owner/repo form: %w", source, services.ErrFetchMalformed)
	}

	ghRelease, _, err := s.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release of %s: %w", source, err)
	}
	if ghRelease.GetDraft() {
		return nil, fmt.Errorf("latest release of %s is a draft: %w", source, services.ErrFetchMalformed)
	}

	assets := make([]gateways.Asset, 0, len(ghRelease.Assets))
	for _, asset := range ghRelease.Assets {
		assets = append(assets, gateways.Asset{
			Name:        asset.GetName(),
			DownloadURL: asset.GetBrowserDownloadURL(),
		})
	}

	release := &latestRelease{Tag: ghRelease.GetTagName(), Assets: assets}
	s.cache.Set(source, release, cache.DefaultExpiration)
	return release, nil
}
