package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gentests/internal/driver"
	"gentests/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove generated files and, optionally, the disk cache",
	Long:  "Remove every generated file under the given directory. Generated files are recognized by the output suffix from the project manifest.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the persistent disk cache")
}

func runClean(cmd *cobra.Command, args []string) error {
	baseDir := "."
	if len(args) > 0 && args[0] != "" {
		baseDir = args[0]
	}
	info, err := os.Stat(baseDir)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", baseDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", baseDir)
	}

	manifest, err := project.LoadManifest(baseDir)
	if err != nil {
		return err
	}
	suffix := manifest.Config.Output.Suffix
	if suffix == "" || suffix == ".rs" {
		return fmt.Errorf("output suffix %q does not distinguish generated files", suffix)
	}

	removed := 0
	err = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, suffix) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %q: %w", path, err)
		}
		removed++
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "removed %d generated file(s)\n", removed)

	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if dropCache {
		cache, err := driver.OpenDiskCache("gentests")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop disk cache: %w", err)
		}
		fmt.Fprintln(os.Stdout, "dropped disk cache")
	}
	return nil
}
