package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, dir, id, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".yml"), []byte(body), 0644))
}

func TestCatalogRepository_GetEntry(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "htop", "id: htop\ninstall:\n  command: sudo apt-get install -y htop\n")

	repo := NewCatalogRepository(dir)
	entry, err := repo.GetEntry(context.Background(), "htop")
	require.NoError(t, err)
	assert.Equal(t, "htop", entry.ID)
}

func TestCatalogRepository_GetEntryNotFound(t *testing.T) {
	repo := NewCatalogRepository(t.TempDir())
	_, err := repo.GetEntry(context.Background(), "no-such-tool")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "software entry not found")
}

func TestCatalogRepository_ListEntriesSorted(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "zram-tools", "id: zram-tools\ninstall:\n  command: sudo apt-get install -y zram-tools\n")
	writeEntry(t, dir, "htop", "id: htop\ninstall:\n  command: sudo apt-get install -y htop\n")

	repo := NewCatalogRepository(dir)
	entries, err := repo.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "htop", entries[0].ID)
	assert.Equal(t, "zram-tools", entries[1].ID)
}

func TestCatalogRepository_ListEntriesSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "htop", "id: htop\ninstall:\n  command: sudo apt-get install -y htop\n")
	writeEntry(t, dir, "broken", "id: [unclosed")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not yaml"), 0644))

	repo := NewCatalogRepository(dir)
	entries, err := repo.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "htop", entries[0].ID)
}

func TestCatalogRepository_ListEntriesMissingDir(t *testing.T) {
	repo := NewCatalogRepository("/nonexistent/catalog")
	_, err := repo.ListEntries(context.Background())
	assert.Error(t, err)
}
