package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// CatalogRepository implements repositories.CatalogRepository using one
// YAML file per software entry
type CatalogRepository struct {
	catalogDir string
	parser     *CatalogParser
}

// NewCatalogRepository creates a new YAML-based catalog repository
func NewCatalogRepository(catalogDir string) *CatalogRepository {
	return &CatalogRepository{
		catalogDir: catalogDir,
		parser:     NewCatalogParser(),
	}
}

// GetEntry retrieves a software entry by ID
func (r *CatalogRepository) GetEntry(_ context.Context, id string) (*entities.SoftwareEntry, error) {
	filePath := filepath.Join(r.catalogDir, id+".yml")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("software entry not found: %s", id)
	}

	return r.parser.ParseFile(filePath)
}

// ListEntries returns all catalog entries, sorted by ID
func (r *CatalogRepository) ListEntries(_ context.Context) ([]*entities.SoftwareEntry, error) {
	files, err := os.ReadDir(r.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	catalogEntries := make([]*entities.SoftwareEntry, 0)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".yml") {
			continue
		}

		filePath := filepath.Join(r.catalogDir, file.Name())
		entry, err := r.parser.ParseFile(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Fprintf(os.Stderr, "Warning: failed to parse %s: %v\n", file.Name(), err)
			continue
		}

		catalogEntries = append(catalogEntries, entry)
	}

	sort.Slice(catalogEntries, func(i, j int) bool {
		return catalogEntries[i].ID < catalogEntries[j].ID
	})

	return catalogEntries, nil
}
