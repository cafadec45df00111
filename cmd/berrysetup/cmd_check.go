package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// newCheckCmd creates the `check` command.
// Usage: berrysetup check [--min-version <version>] [package]...
func newCheckCmd() *cobra.Command {
	var minVersion string

	cmd := &cobra.Command{
		Use:   "check [package]...",
		Short: "Report the latest release tag of GitHub-backed entries",
		Long: `Queries the latest release tag for every GitHub-backed catalog entry
(or just the named ones). With --min-version, entries whose latest tag
is older than the given semantic version are flagged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			var min *semver.Version
			if minVersion != "" {
				min, err = semver.NewVersion(minVersion)
				if err != nil {
					return fmt.Errorf("invalid --min-version: %w", err)
				}
			}

			catalog := a.newCatalog()
			entries, err := catalog.ListEntries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list catalog: %w", err)
			}

			wanted := make(map[string]bool, len(args))
			for _, id := range args {
				wanted[id] = true
			}

			source := a.newGitHubSource()
			stale := 0
			for _, entry := range entries {
				if entry.Release.Provider != entities.ProviderGitHub {
					continue
				}
				if len(wanted) > 0 && !wanted[entry.ID] {
					continue
				}

				tag, err := source.LatestTag(cmd.Context(), entry.Release.Source)
				if err != nil {
					fmt.Printf("%-20s error: %v\n", entry.ID, err)
					continue
				}

				note := ""
				if v, err := semver.NewVersion(tag); err != nil {
					note = " (not a semantic version)"
				} else if min != nil && v.LessThan(min) {
					note = fmt.Sprintf(" (older than %s)", min)
					stale++
				}
				fmt.Printf("%-20s %s%s\n", entry.ID, tag, note)
			}

			if stale > 0 {
				return fmt.Errorf("%d entry(ies) below the required version", stale)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&minVersion, "min-version", "", "Flag entries whose latest tag is older than this version")

	return cmd
}
