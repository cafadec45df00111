package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// newListCmd creates the `list` command.
// Usage: berrysetup list
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the software catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			entries, err := a.newCatalog().ListEntries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list catalog: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Catalog is empty.")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("%-20s %-16s %s%s\n",
					entry.ID, providerLabel(entry), entry.Description, entryFlags(entry))
			}
			fmt.Printf("\n%d entries\n", len(entries))
			return nil
		},
	}
}

func providerLabel(entry *entities.SoftwareEntry) string {
	if !entry.NeedsResolution() {
		return "static"
	}
	return string(entry.Release.Provider)
}

func entryFlags(entry *entities.SoftwareEntry) string {
	flags := ""
	if entry.Requires64Bit {
		flags += " [64-bit]"
	}
	if entry.ResourceHeavy {
		flags += " [heavy]"
	}
	return flags
}
