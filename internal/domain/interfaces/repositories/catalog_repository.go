// Package repositories defines persistence contracts for the domain layer.
package repositories

import (
	"context"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// CatalogRepository provides access to the software catalog
type CatalogRepository interface {
	// GetEntry retrieves a software entry by ID
	GetEntry(ctx context.Context, id string) (*entities.SoftwareEntry, error)

	// ListEntries returns all catalog entries
	ListEntries(ctx context.Context) ([]*entities.SoftwareEntry, error)
}
