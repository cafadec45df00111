package orchestrators

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrysetup/berrysetup/internal/domain-adapters/gateways"
	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

type stubCatalog struct {
	entries map[string]*entities.SoftwareEntry
}

func (s *stubCatalog) GetEntry(_ context.Context, id string) (*entities.SoftwareEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("software entry not found: %s", id)
	}
	return entry, nil
}

func (s *stubCatalog) ListEntries(_ context.Context) ([]*entities.SoftwareEntry, error) {
	out := make([]*entities.SoftwareEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

type stubResolver struct {
	resolutions map[string]entities.Resolution
	calls       []string
}

func (s *stubResolver) Resolve(_ context.Context, entry *entities.SoftwareEntry) entities.Resolution {
	s.calls = append(s.calls, entry.ID)
	return s.resolutions[entry.ID]
}

type stubInstaller struct {
	results map[string]*gateways.InstallResult
	calls   []string
}

func (s *stubInstaller) Install(_ context.Context, entry *entities.SoftwareEntry, _ entities.Resolution) *gateways.InstallResult {
	s.calls = append(s.calls, entry.ID)
	if r, ok := s.results[entry.ID]; ok {
		return r
	}
	return &gateways.InstallResult{EntryID: entry.ID, Success: true}
}

func simpleEntry(id string) *entities.SoftwareEntry {
	return &entities.SoftwareEntry{
		ID:             id,
		InstallCommand: "sudo apt-get install -y " + id,
	}
}

func TestInstallBatch_AllSucceed(t *testing.T) {
	catalog := &stubCatalog{entries: map[string]*entities.SoftwareEntry{
		"htop": simpleEntry("htop"),
		"vim":  simpleEntry("vim"),
	}}
	resolver := &stubResolver{resolutions: map[string]entities.Resolution{
		"htop": entities.Resolved("https://example.com/htop.deb"),
		"vim":  entities.Resolved("https://example.com/vim.deb"),
	}}
	installer := &stubInstaller{}

	o := NewInstallOrchestrator(catalog, resolver, installer, nil)
	report := o.InstallBatch(context.Background(), []string{"htop", "vim"})

	assert.Equal(t, 2, report.Installed)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []string{"htop", "vim"}, installer.calls)
}

func TestInstallBatch_SkippedResolutionOmitsInstall(t *testing.T) {
	catalog := &stubCatalog{entries: map[string]*entities.SoftwareEntry{
		"htop": simpleEntry("htop"),
		"vim":  simpleEntry("vim"),
	}}
	resolver := &stubResolver{resolutions: map[string]entities.Resolution{
		"htop": entities.Skip(),
		"vim":  entities.Resolved("https://example.com/vim.deb"),
	}}
	installer := &stubInstaller{}

	o := NewInstallOrchestrator(catalog, resolver, installer, nil)
	report := o.InstallBatch(context.Background(), []string{"htop", "vim"})

	assert.Equal(t, 1, report.Installed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"vim"}, installer.calls, "skipped entry must never reach the installer")
}

func TestInstallBatch_FailureDoesNotAbortBatch(t *testing.T) {
	catalog := &stubCatalog{entries: map[string]*entities.SoftwareEntry{
		"htop": simpleEntry("htop"),
		"vim":  simpleEntry("vim"),
	}}
	resolver := &stubResolver{resolutions: map[string]entities.Resolution{
		"htop": entities.Resolved("https://example.com/htop.deb"),
		"vim":  entities.Resolved("https://example.com/vim.deb"),
	}}
	installer := &stubInstaller{results: map[string]*gateways.InstallResult{
		"htop": {EntryID: "htop", Success: false, ExitCode: 7},
	}}

	o := NewInstallOrchestrator(catalog, resolver, installer, nil)
	report := o.InstallBatch(context.Background(), []string{"htop", "vim"})

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Installed)
	require.Len(t, report.Entries, 2)
	assert.ErrorContains(t, report.Entries[0].Err, "exited with code 7")
}

func TestInstallBatch_UnknownEntryRecordedAsFailed(t *testing.T) {
	catalog := &stubCatalog{entries: map[string]*entities.SoftwareEntry{}}
	resolver := &stubResolver{}
	installer := &stubInstaller{}

	o := NewInstallOrchestrator(catalog, resolver, installer, nil)
	report := o.InstallBatch(context.Background(), []string{"no-such-tool"})

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, resolver.calls)
	assert.Empty(t, installer.calls)
}

func TestInstallBatch_64BitRequirementSkipsOn32Bit(t *testing.T) {
	entry := simpleEntry("etcher")
	entry.Requires64Bit = true
	catalog := &stubCatalog{entries: map[string]*entities.SoftwareEntry{"etcher": entry}}
	resolver := &stubResolver{}
	installer := &stubInstaller{}

	o := NewInstallOrchestrator(catalog, resolver, installer, nil)
	o.is64Bit = func() bool { return false }

	report := o.InstallBatch(context.Background(), []string{"etcher"})

	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, resolver.calls, "entry must be skipped before any resolution")
	assert.Equal(t, "requires a 64-bit system", report.Entries[0].SkipReason)
}

func TestBatchReport_Summary(t *testing.T) {
	report := &BatchReport{Installed: 2, Skipped: 1, Failed: 1}
	assert.Contains(t, report.Summary(), "installed 2, skipped 1, failed 1")
}
