// Package config loads runtime configuration from the environment.
package config

import (
	"context"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/oauth2"
)

// Config holds all runtime settings. Every field has a default so a bare
// invocation works; the environment overrides individual settings.
type Config struct {
	CatalogDir     string        `envconfig:"BERRYSETUP_CATALOG_DIR" default:"catalog"`
	LogDir         string        `envconfig:"BERRYSETUP_LOG_DIR" default:"/var/log/berrysetup"`
	DownloadDir    string        `envconfig:"BERRYSETUP_DOWNLOAD_DIR" default:"/var/cache/berrysetup"`
	SystemRoot     string        `envconfig:"BERRYSETUP_SYSTEM_ROOT" default:"/"`
	BootConfigPath string        `envconfig:"BERRYSETUP_BOOT_CONFIG" default:"/boot/firmware/config.txt"`
	GitHubToken    string        `envconfig:"GITHUB_TOKEN"`
	ProbeHost      string        `envconfig:"BERRYSETUP_PROBE_HOST" default:"api.github.com"`
	ProbeTimeout   time.Duration `envconfig:"BERRYSETUP_PROBE_TIMEOUT" default:"2s"`
	FetchTimeout   time.Duration `envconfig:"BERRYSETUP_FETCH_TIMEOUT" default:"10s"`
	RetryDelay     time.Duration `envconfig:"BERRYSETUP_RETRY_DELAY" default:"5s"`
	Rounds         int           `envconfig:"BERRYSETUP_ROUNDS" default:"3"`
	LogLevel       string        `envconfig:"BERRYSETUP_LOG_LEVEL" default:"info"`
}

// NewConfigFromEnv loads the configuration from environment variables
func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateGitHubClient builds a GitHub API client, authenticated when a
// token is configured. Unauthenticated clients work but hit the low
// rate limit quickly.
func (c *Config) CreateGitHubClient() *github.Client {
	if c.GitHubToken == "" {
		return github.NewClient(nil)
	}
	oauthClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.GitHubToken}))
	return github.NewClient(oauthClient)
}
