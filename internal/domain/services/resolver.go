// Package services contains the release-resolution control flow.
package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces/gateways"
)

// Resolution timing defaults
const (
	DefaultProbeHost    = "api.github.com"
	DefaultProbeTimeout = 2 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultRetryDelay   = 5 * time.Second
	DefaultRounds       = 3
)

// ResolverConfig bounds the probe, fetch and retry behavior
type ResolverConfig struct {
	ProbeHost    string
	ProbeTimeout time.Duration
	FetchTimeout time.Duration
	RetryDelay   time.Duration
	Rounds       int
}

// Resolver turns a software entry's release query into a Resolution. It
// owns the probe/retry skeleton; provider-specific extraction lives in
// the ReleaseSource implementations.
type Resolver struct {
	sources    map[entities.ProviderKind]gateways.ReleaseSource
	probe      gateways.NetworkProbe
	negotiator gateways.Negotiator
	log        interfaces.Logger
	cfg        ResolverConfig

	// sleep is replaceable in tests so retry delays can be observed
	// without waiting them out
	sleep func(time.Duration)
}

// NewResolver creates a resolver over the given provider sources. Zero
// config values fall back to the package defaults.
func NewResolver(
	sources map[entities.ProviderKind]gateways.ReleaseSource,
	probe gateways.NetworkProbe,
	negotiator gateways.Negotiator,
	log interfaces.Logger,
	cfg ResolverConfig,
) *Resolver {
	if cfg.ProbeHost == "" {
		cfg.ProbeHost = DefaultProbeHost
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Rounds == 0 {
		cfg.Rounds = DefaultRounds
	}
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}

	return &Resolver{
		sources:    sources,
		probe:      probe,
		negotiator: negotiator,
		log:        log,
		cfg:        cfg,
		sleep:      time.Sleep,
	}
}

// Resolve produces a download URL (or a skip decision) for one entry.
// Failures never abort: they degrade to the interactive negotiation.
func (r *Resolver) Resolve(ctx context.Context, entry *entities.SoftwareEntry) entities.Resolution {
	query := entry.Release

	if !entry.NeedsResolution() {
		return entities.Resolved(query.FallbackURL)
	}

	source, ok := r.sources[query.Provider]
	if !ok {
		return r.negotiate(ctx, entry, fmt.Sprintf("no release source for provider %q", query.Provider))
	}

	// A dead network will not heal within the retry budget; go straight
	// to the operator with zero fetch attempts.
	if !r.probe.Reachable(r.cfg.ProbeHost, r.cfg.ProbeTimeout) {
		r.log.Warn("network probe failed, skipping retries",
			interfaces.F("software", entry.ID),
			interfaces.F("probe_host", r.cfg.ProbeHost))
		return r.negotiate(ctx, entry, ErrNetworkUnreachable.Error())
	}

	pattern, err := regexp.Compile(query.AssetPattern)
	if err != nil {
		// A bad pattern cannot heal across rounds either
		return r.negotiate(ctx, entry, fmt.Sprintf("invalid asset pattern %q: %v", query.AssetPattern, err))
	}

	var lastErr error
	for round := 1; round <= r.cfg.Rounds; round++ {
		if round > 1 {
			r.sleep(r.cfg.RetryDelay)
		}

		assets, err := r.fetchOnce(ctx, source, query)
		if err != nil {
			lastErr = err
			r.log.Warn("release fetch failed",
				interfaces.F("software", entry.ID),
				interfaces.F("round", round),
				interfaces.F("error", err))
			continue
		}

		// First match wins, in the provider's listing order. With several
		// matching assets the outcome follows provider-side ordering; that
		// non-determinism is accepted, not silently replaced by a version
		// sort.
		if url, found := firstMatch(assets, pattern); found {
			r.log.Info("release resolved",
				interfaces.F("software", entry.ID),
				interfaces.F("round", round),
				interfaces.F("url", url))
			return entities.Resolved(url)
		}

		lastErr = ErrNoMatchingAsset
		r.log.Warn("no matching asset",
			interfaces.F("software", entry.ID),
			interfaces.F("round", round),
			interfaces.F("pattern", query.AssetPattern),
			interfaces.F("assets", len(assets)))
	}

	reason := fmt.Sprintf("resolution failed after %d attempts: %v", r.cfg.Rounds, lastErr)
	return r.negotiate(ctx, entry, reason)
}

// fetchOnce performs a single bounded fetch round against a source
func (r *Resolver) fetchOnce(ctx context.Context, source gateways.ReleaseSource, query entities.ReleaseQuery) ([]gateways.Asset, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	assets, err := source.FetchAssets(fetchCtx, query)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrFetchEmpty
	}
	return assets, nil
}

func (r *Resolver) negotiate(ctx context.Context, entry *entities.SoftwareEntry, reason string) entities.Resolution {
	res := r.negotiator.Negotiate(ctx, gateways.NegotiationRequest{
		Software:          entry.ID,
		SourceDescription: entry.Release.Source,
		FallbackURL:       entry.Release.FallbackURL,
		Reason:            reason,
	})

	switch res.Kind {
	case entities.KindSkipped:
		r.log.Info("entry skipped by operator", interfaces.F("software", entry.ID))
	case entities.KindUserProvided:
		r.log.Info("operator supplied URL",
			interfaces.F("software", entry.ID),
			interfaces.F("url", res.URL))
	case entities.KindResolved:
		r.log.Info("operator accepted fallback URL",
			interfaces.F("software", entry.ID),
			interfaces.F("url", res.URL))
	}
	return res
}

func firstMatch(assets []gateways.Asset, pattern *regexp.Regexp) (string, bool) {
	for _, asset := range assets {
		if pattern.MatchString(asset.Name) {
			return asset.DownloadURL, true
		}
	}
	return "", false
}
