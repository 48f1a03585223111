package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gentests/internal/diag"
	"gentests/internal/diagfmt"
	"gentests/internal/driver"
	"gentests/internal/observ"
	"gentests/internal/project"
	"gentests/internal/source"
)

// pipelineOptions carries the resolved flag values shared by the expand
// and check commands.
type pipelineOptions struct {
	format         string
	jobs           int
	withNotes      bool
	fullPath       bool
	diskCache      bool
	maxDiagnostics int
	showTimings    bool
	quiet          bool
	write          bool
}

func readPipelineOptions(cmd *cobra.Command, write bool) (pipelineOptions, error) {
	opts := pipelineOptions{write: write}

	var err error
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "json":
		// supported
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if opts.diskCache, err = cmd.Flags().GetBool("disk-cache"); err != nil {
		return opts, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if opts.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.showTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return opts, nil
}

// runPipeline expands the given file or directory, optionally writes the
// generated outputs, and renders every diagnostic collected on the way.
func runPipeline(cmd *cobra.Command, path string, opts pipelineOptions) error {
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	startDir := path
	if !st.IsDir() {
		startDir = filepath.Dir(path)
	}
	manifest, err := project.LoadManifest(startDir)
	if err != nil {
		return err
	}

	driverOpts := &driver.Options{
		Jobs:           opts.jobs,
		MaxDiagnostics: opts.maxDiagnostics,
		Markers:        manifest.Config.Attrs.Markers,
		Copied:         manifest.Config.Attrs.Copied,
		Suffix:         manifest.Config.Output.Suffix,
	}
	if opts.diskCache {
		cache, err := driver.OpenDiskCache("gentests")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		driverOpts.Cache = cache
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
		report  *observ.Report
	)
	if st.IsDir() {
		fileSet, results, report, err = driver.ExpandDir(cmd.Context(), path, driverOpts)
		if err != nil {
			return fmt.Errorf("expansion failed: %w", err)
		}
	} else {
		fileSet = source.NewFileSetWithBase(startDir)
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			return fmt.Errorf("failed to load file: %w", loadErr)
		}
		results = []driver.FileResult{driver.ExpandOne(fileSet, id, driverOpts)}
	}

	exitCode := 0
	written := 0
	cacheHits := 0
	for i := range results {
		r := &results[i]
		if !r.OK {
			exitCode = 1
			continue
		}
		if r.CacheHit {
			cacheHits++
		}
		if !opts.write {
			continue
		}
		// A file without expansion units passes through unchanged and
		// produces no output file.
		if bytes.Equal(r.Output, fileSet.Get(r.FileID).Content) {
			continue
		}
		outPath := manifest.OutputPath(r.Path)
		if writeErr := writeOutput(outPath, r.Output); writeErr != nil {
			r.Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOWriteFile,
				Message:  fmt.Sprintf("failed to write %s: %v", outPath, writeErr),
			})
			exitCode = 1
			continue
		}
		written++
	}

	if err := renderResults(fileSet, results, opts, cmd); err != nil {
		return err
	}

	if !opts.quiet && opts.format == "pretty" {
		fmt.Fprintf(os.Stdout, "processed %d file(s), %d cache hit(s), wrote %d, failed %d\n",
			len(results), cacheHits, written, countFailed(results))
	}
	if opts.showTimings && report != nil {
		fmt.Fprintln(os.Stderr, report.Summary())
	}

	if exitCode != 0 {
		// Diagnostics are already printed, suppress cobra's usage dump.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func countFailed(results []driver.FileResult) int {
	n := 0
	for i := range results {
		if !results[i].OK {
			n++
		}
	}
	return n
}

func writeOutput(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, content, 0o644)
}

func renderResults(fileSet *source.FileSet, results []driver.FileResult, opts pipelineOptions, cmd *cobra.Command) error {
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch opts.format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:      colored,
			PathMode:   pathMode,
			ShowNotes:  opts.withNotes,
			ShowSource: true,
		}
		for i := range results {
			r := &results[i]
			if r.Bag == nil || r.Bag.Len() == 0 {
				continue
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath(fileSet, r, opts.fullPath))
			diagfmt.Pretty(os.Stdout, r.Bag, fileSet, prettyOpts)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     opts.withNotes,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for i := range results {
			r := &results[i]
			if r.Bag == nil {
				continue
			}
			output[displayPath(fileSet, r, opts.fullPath)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}
	return nil
}

func displayPath(fileSet *source.FileSet, r *driver.FileResult, fullPath bool) string {
	if fullPath {
		if abs, err := filepath.Abs(r.Path); err == nil {
			return abs
		}
		return r.Path
	}
	if f, ok := fileSet.GetByPath(r.Path); ok {
		return f.FormatPath(fileSet.BaseDir())
	}
	return r.Path
}
