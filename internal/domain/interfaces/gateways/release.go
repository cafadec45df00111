// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
	"time"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// Asset is one downloadable candidate from a provider's listing. Order of
// a listing follows the provider and is not guaranteed stable.
type Asset struct {
	Name        string // Filename the asset pattern is matched against
	DownloadURL string
}

// ReleaseSource fetches the current asset listing for a release query.
// One implementation exists per ProviderKind; the retry and probe logic
// around a fetch belongs to the resolver, not the source.
type ReleaseSource interface {
	FetchAssets(ctx context.Context, query entities.ReleaseQuery) ([]Asset, error)
}

// NetworkProbe performs a single lightweight reachability check. No
// retries happen at this layer.
type NetworkProbe interface {
	Reachable(host string, timeout time.Duration) bool
}
