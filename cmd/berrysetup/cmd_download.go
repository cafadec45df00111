package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain-adapters/gateways"
	"github.com/berrysetup/berrysetup/internal/external-adapters/gpg"
)

// newDownloadCmd creates the `download` command.
// Usage: berrysetup download <package>...
func newDownloadCmd() *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "download <package>...",
		Short: "Resolve and download packages without installing",
		Long: `Resolves each package and downloads the asset to the cache directory.
Entries that declare a detached GPG signature are verified against their
published keys; a failed verification removes the download.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if destDir == "" {
				destDir = a.cfg.DownloadDir
			}

			catalog := a.newCatalog()
			resolver := a.newResolver()
			downloader := gateways.NewAssetDownloader(gpg.NewVerifier(), a.log)

			failed := 0
			for _, id := range args {
				entry, err := catalog.GetEntry(cmd.Context(), id)
				if err != nil {
					fmt.Printf("%-20s error: %v\n", id, err)
					failed++
					continue
				}

				res := resolver.Resolve(cmd.Context(), entry)
				if res.Skipped() {
					fmt.Printf("%-20s skipped\n", id)
					continue
				}

				path, err := downloader.Download(cmd.Context(), entry, res.URL, destDir)
				if err != nil {
					fmt.Printf("%-20s download failed: %v\n", id, err)
					failed++
					continue
				}
				fmt.Printf("%-20s %s\n", id, path)
			}

			if failed > 0 {
				return fmt.Errorf("%d download(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&destDir, "dest", "", "Destination directory (default: the configured cache dir)")

	return cmd
}
