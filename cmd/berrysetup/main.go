// Package main provides the berrysetup CLI for provisioning Raspberry Pi systems.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/config"
	"github.com/berrysetup/berrysetup/internal/domain-adapters/gateways"
	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
	gatewayifaces "github.com/berrysetup/berrysetup/internal/domain/interfaces/gateways"
	"github.com/berrysetup/berrysetup/internal/domain/services"
	"github.com/berrysetup/berrysetup/internal/external-adapters/logging"
	"github.com/berrysetup/berrysetup/internal/external-adapters/yaml"
)

// version is set at build time via -ldflags.
var version = "dev"

// app bundles the shared wiring every subcommand needs
type app struct {
	cfg *config.Config
	log interfaces.Logger
}

func newApp() (*app, error) {
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &app{
		cfg: cfg,
		log: logging.NewLogrusLogger(cfg.LogLevel),
	}, nil
}

func (a *app) newCatalog() *yaml.CatalogRepository {
	return yaml.NewCatalogRepository(a.cfg.CatalogDir)
}

func (a *app) newGitHubSource() *gateways.GitHubSource {
	return gateways.NewGitHubSource(a.cfg.CreateGitHubClient())
}

func (a *app) newResolver() *services.Resolver {
	sources := map[entities.ProviderKind]gatewayifaces.ReleaseSource{
		entities.ProviderGitHub: a.newGitHubSource(),
		entities.ProviderPage:   gateways.NewPageSource(),
	}
	return services.NewResolver(
		sources,
		gateways.NewTCPProbe(),
		gateways.NewPromptNegotiator(os.Stdin, os.Stdout, a.log),
		a.log,
		services.ResolverConfig{
			ProbeHost:    a.cfg.ProbeHost,
			ProbeTimeout: a.cfg.ProbeTimeout,
			FetchTimeout: a.cfg.FetchTimeout,
			RetryDelay:   a.cfg.RetryDelay,
			Rounds:       a.cfg.Rounds,
		},
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "berrysetup",
		Short: "Provision a Raspberry Pi with curated software and system tweaks",
		Long: `berrysetup installs software from a YAML catalog. Download URLs are
resolved against GitHub releases or project download pages, with an
interactive fallback when the network or the provider lets you down.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newListCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newInstallCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newDisplayCmd())
	root.AddCommand(newHotspotCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
