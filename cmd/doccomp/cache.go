package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"doccomp/internal/convert"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered page cache",
	}
	clean := &cobra.Command{
		Use:   "clean",
		Short: "Drop every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = a.cfg.Resolve(a.cfg.Build.CacheDir)
			}
			if dir == "" {
				return errors.New("no cache directory: set build.cache_dir or pass --dir")
			}
			cache, err := convert.OpenDiskCache(dir)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clean cache %s: %w", dir, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cache cleaned: %s\n", dir)
			return nil
		},
	}
	clean.Flags().String("dir", "", "cache directory; overrides build.cache_dir")
	cmd.AddCommand(clean)
	return cmd
}
