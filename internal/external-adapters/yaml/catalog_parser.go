// Package yaml provides YAML-based catalog parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// yamlEntry represents the raw YAML structure of one catalog file
type yamlEntry struct {
	ID            string      `yaml:"id"`
	Description   string      `yaml:"description"`
	ResourceHeavy bool        `yaml:"resource_heavy"`
	Requires64Bit bool        `yaml:"requires_64bit"`
	Install       yamlInstall `yaml:"install"`
	Release       yamlRelease `yaml:"release"`
	Verify        yamlVerify  `yaml:"verify"`
}

type yamlInstall struct {
	Command string `yaml:"command"`
}

type yamlRelease struct {
	Provider     string `yaml:"provider"`
	Source       string `yaml:"source"`
	AssetPattern string `yaml:"asset_pattern"`
	FallbackURL  string `yaml:"fallback_url"`
}

type yamlVerify struct {
	SignatureURL string `yaml:"signature_url"`
	KeysURL      string `yaml:"keys_url"`
}

// CatalogParser parses YAML catalog files
type CatalogParser struct{}

// NewCatalogParser creates a new YAML parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// ParseFile parses a YAML catalog file into a SoftwareEntry
func (p *CatalogParser) ParseFile(filePath string) (*entities.SoftwareEntry, error) {
	//nolint:gosec // G304: filePath is a catalog path from the repository
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a SoftwareEntry
func (p *CatalogParser) Parse(data []byte) (*entities.SoftwareEntry, error) {
	var raw yamlEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.ID == "" {
		return nil, fmt.Errorf("catalog entry must have an id")
	}
	if raw.Install.Command == "" {
		return nil, fmt.Errorf("catalog entry %s must have an install command", raw.ID)
	}

	provider, err := parseProvider(raw.Release.Provider)
	if err != nil {
		return nil, fmt.Errorf("catalog entry %s: %w", raw.ID, err)
	}
	if provider != entities.ProviderStatic && raw.Release.Source == "" {
		return nil, fmt.Errorf("catalog entry %s: provider %s requires a source", raw.ID, provider)
	}

	return &entities.SoftwareEntry{
		ID:             raw.ID,
		Description:    raw.Description,
		InstallCommand: raw.Install.Command,
		ResourceHeavy:  raw.ResourceHeavy,
		Requires64Bit:  raw.Requires64Bit,
		Release: entities.ReleaseQuery{
			Provider:     provider,
			Source:       raw.Release.Source,
			AssetPattern: raw.Release.AssetPattern,
			FallbackURL:  raw.Release.FallbackURL,
		},
		Verify: entities.VerifyConfig{
			SignatureURL: raw.Verify.SignatureURL,
			KeysURL:      raw.Verify.KeysURL,
		},
	}, nil
}

// parseProvider maps the YAML provider field to a ProviderKind. An empty
// field means the entry installs without resolution.
func parseProvider(s string) (entities.ProviderKind, error) {
	switch entities.ProviderKind(s) {
	case entities.ProviderGitHub, entities.ProviderPage, entities.ProviderStatic:
		return entities.ProviderKind(s), nil
	case "":
		return entities.ProviderStatic, nil
	default:
		return "", fmt.Errorf("unsupported release provider %q", s)
	}
}
