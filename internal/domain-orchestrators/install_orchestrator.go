// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/berrysetup/berrysetup/internal/domain-adapters/gateways"
	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces/repositories"
)

// ReleaseResolver resolves a download URL for a catalog entry
type ReleaseResolver interface {
	Resolve(ctx context.Context, entry *entities.SoftwareEntry) entities.Resolution
}

// Installer runs a catalog entry's install command
type Installer interface {
	Install(ctx context.Context, entry *entities.SoftwareEntry, res entities.Resolution) *gateways.InstallResult
}

// InstallOrchestrator coordinates the resolve-then-install workflow for a
// batch of catalog entries. One entry failing or being skipped never aborts
// the batch.
type InstallOrchestrator struct {
	catalog   repositories.CatalogRepository
	resolver  ReleaseResolver
	installer Installer
	log       interfaces.Logger
	is64Bit   func() bool
}

// NewInstallOrchestrator creates a new install orchestrator
func NewInstallOrchestrator(
	catalog repositories.CatalogRepository,
	resolver ReleaseResolver,
	installer Installer,
	log interfaces.Logger,
) *InstallOrchestrator {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &InstallOrchestrator{
		catalog:   catalog,
		resolver:  resolver,
		installer: installer,
		log:       log,
		is64Bit:   func() bool { return runtime.GOARCH == "arm64" || runtime.GOARCH == "amd64" },
	}
}

// EntryReport records the outcome of one entry in a batch
type EntryReport struct {
	EntryID    string
	Resolution entities.Resolution
	Result     *gateways.InstallResult
	Skipped    bool
	SkipReason string
	Err        error
}

// BatchReport contains the outcome of a whole batch run
type BatchReport struct {
	Entries   []EntryReport
	Duration  time.Duration
	Installed int
	Skipped   int
	Failed    int
}

// InstallBatch resolves and installs the named entries in order. Unknown
// IDs and failed installs are recorded in the report; the batch always
// runs to the end.
func (o *InstallOrchestrator) InstallBatch(ctx context.Context, ids []string) *BatchReport {
	start := time.Now()
	report := &BatchReport{}

	for _, id := range ids {
		entryReport := o.installOne(ctx, id)
		report.Entries = append(report.Entries, entryReport)

		switch {
		case entryReport.Err != nil:
			report.Failed++
		case entryReport.Skipped:
			report.Skipped++
		default:
			report.Installed++
		}
	}

	report.Duration = time.Since(start)
	return report
}

func (o *InstallOrchestrator) installOne(ctx context.Context, id string) EntryReport {
	entryReport := EntryReport{EntryID: id}

	entry, err := o.catalog.GetEntry(ctx, id)
	if err != nil {
		entryReport.Err = fmt.Errorf("failed to load catalog entry: %w", err)
		o.log.Error("catalog lookup failed", interfaces.F("package", id), interfaces.F("error", err))
		return entryReport
	}

	if entry.Requires64Bit && !o.is64Bit() {
		entryReport.Skipped = true
		entryReport.SkipReason = "requires a 64-bit system"
		o.log.Warn("skipping package", interfaces.F("package", id), interfaces.F("reason", entryReport.SkipReason))
		return entryReport
	}

	if entry.ResourceHeavy {
		o.log.Warn("package is resource heavy, expect a long install", interfaces.F("package", id))
	}

	res := o.resolver.Resolve(ctx, entry)
	entryReport.Resolution = res
	if res.Skipped() {
		entryReport.Skipped = true
		entryReport.SkipReason = "no download source available"
		o.log.Warn("skipping package", interfaces.F("package", id), interfaces.F("reason", entryReport.SkipReason))
		return entryReport
	}

	result := o.installer.Install(ctx, entry, res)
	entryReport.Result = result
	if result.Err != nil {
		entryReport.Err = result.Err
	} else if !result.Success {
		entryReport.Err = fmt.Errorf("install command exited with code %d", result.ExitCode)
	}

	return entryReport
}

// Summary returns a human-readable summary of the batch run
func (r *BatchReport) Summary() string {
	return fmt.Sprintf("installed %d, skipped %d, failed %d (took %v)",
		r.Installed, r.Skipped, r.Failed, r.Duration.Round(time.Millisecond))
}
