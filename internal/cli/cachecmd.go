package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taleakit/talea/pkg/cache"
)

// newCacheCmd creates the cache command group for managing the
// precomputed-matrix cache.
func newCacheCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the precomputed-matrix cache",
		Long: `Manage the cache of precomputed Floyd-Warshall matrices.

Matrices are cached on disk keyed by a content hash of the record set
and cost weights, so a stale entry can never be returned. Entries
expire on their own, but "cache clear" removes them immediately.`,
	}

	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "matrix cache directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveCacheDir(dir)
			if err != nil {
				return err
			}
			fmt.Println(d)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveCacheDir(dir)
			if err != nil {
				return err
			}
			c, err := cache.NewFileCache(d)
			if err != nil {
				return err
			}
			fc, ok := c.(*cache.FileCache)
			if !ok {
				return fmt.Errorf("unexpected cache backend %T", c)
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			printSuccess("Cleared cache at %s", d)
			return nil
		},
	})

	return cmd
}

// resolveCacheDir returns dir unchanged when set, otherwise the
// per-user default.
func resolveCacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return defaultCacheDir()
}
