package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain-adapters/gateways"
	orchestrators "github.com/berrysetup/berrysetup/internal/domain-orchestrators"
)

// newInstallCmd creates the `install` command.
// Usage: berrysetup install <package>... | berrysetup install --all
func newInstallCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "install [package]...",
		Short: "Resolve and install software from the catalog",
		Long: `Resolves a download URL for each package and runs its install command.
A package that cannot be resolved is offered interactively: provide a
URL yourself, accept the catalog fallback, or skip it. Skipped and
failed packages never abort the rest of the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one package or pass --all")
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			catalog := a.newCatalog()
			ids := args
			if all {
				entries, err := catalog.ListEntries(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list catalog: %w", err)
				}
				ids = nil
				for _, entry := range entries {
					ids = append(ids, entry.ID)
				}
			}

			orchestrator := orchestrators.NewInstallOrchestrator(
				catalog,
				a.newResolver(),
				gateways.NewInstallDispatcher(a.cfg.LogDir, a.log),
				a.log,
			)

			report := orchestrator.InstallBatch(cmd.Context(), ids)

			for _, entry := range report.Entries {
				switch {
				case entry.Err != nil:
					fmt.Printf("%-20s FAILED: %v\n", entry.EntryID, entry.Err)
				case entry.Skipped:
					fmt.Printf("%-20s skipped (%s)\n", entry.EntryID, entry.SkipReason)
				default:
					fmt.Printf("%-20s installed\n", entry.EntryID)
				}
				if entry.Result != nil && entry.Result.LogPath != "" {
					fmt.Printf("%-20s log: %s\n", "", entry.Result.LogPath)
				}
			}
			fmt.Println(report.Summary())

			if report.Failed > 0 {
				return fmt.Errorf("%d package(s) failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Install every entry in the catalog")

	return cmd
}
