package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"gentests/internal/diag"
	"gentests/internal/observ"
	"gentests/internal/source"
)

// listRustFiles returns the sorted list of *.rs files under dir,
// skipping previously generated outputs.
func listRustFiles(dir, skipSuffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".rs") {
			return nil
		}
		if skipSuffix != "" && skipSuffix != ".rs" && strings.HasSuffix(path, skipSuffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every source file under dir in parallel. Results
// come back in the sorted file order regardless of scheduling.
func ExpandDir(ctx context.Context, dir string, opts *Options) (*source.FileSet, []FileResult, *observ.Report, error) {
	timer := observ.NewTimer()

	scan := timer.Begin("scan")
	files, err := listRustFiles(dir, opts.Suffix)
	timer.End(scan, "")
	if err != nil {
		return nil, nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		report := timer.Report()
		return fileSet, nil, &report, nil
	}

	// Loading is kept sequential: the FileSet append is not
	// synchronized, and the expansion dominates the run anyway.
	load := timer.Begin("load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}
	timer.End(load, "")

	ex := timer.Begin("expand")
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFile,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			// Slot i is owned by this goroutine, no mutex needed.
			results[i] = ExpandOne(fileSet, fileIDs[path], opts)
			return nil
		})
	}
	err = g.Wait()
	timer.End(ex, "")

	report := timer.Report()
	return fileSet, results, &report, err
}
