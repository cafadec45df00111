package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// newResolveCmd creates the `resolve` command.
// Usage: berrysetup resolve <package>...
func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <package>...",
		Short: "Resolve download URLs without installing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			catalog := a.newCatalog()
			resolver := a.newResolver()

			for _, id := range args {
				entry, err := catalog.GetEntry(cmd.Context(), id)
				if err != nil {
					fmt.Printf("%-20s error: %v\n", id, err)
					continue
				}

				res := resolver.Resolve(cmd.Context(), entry)
				switch res.Kind {
				case entities.KindResolved:
					fmt.Printf("%-20s %s\n", id, res.URL)
				case entities.KindUserProvided:
					fmt.Printf("%-20s %s (user provided)\n", id, res.URL)
				case entities.KindSkipped:
					fmt.Printf("%-20s skipped\n", id)
				}
			}
			return nil
		},
	}
}
