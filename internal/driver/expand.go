package driver

import (
	"encoding/binary"
	"runtime"
	"strings"

	"gentests/internal/diag"
	"gentests/internal/expand"
	"gentests/internal/parser"
	"gentests/internal/project"
	"gentests/internal/source"
)

// Options configures an expansion run.
type Options struct {
	// Jobs bounds the worker pool, zero means GOMAXPROCS.
	Jobs int

	// MaxDiagnostics caps each file's diagnostic bag.
	MaxDiagnostics int

	// Markers and Copied are manifest-level overrides of the built-in
	// attribute sets. Attribute-level configuration in the source still
	// wins per unit.
	Markers []string
	Copied  []string

	// Suffix of generated files, skipped when scanning a directory so
	// previous outputs are never re-expanded.
	Suffix string

	// Cache replays previous clean expansions, nil disables caching.
	Cache *DiskCache
}

func (o *Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// FileResult is the outcome of expanding one file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Output   []byte // nil when the file failed
	Bag      *diag.Bag
	CacheHit bool
	OK       bool
}

// cacheKey derives the disk cache key for one input under the current
// configuration. Any config change must change the key.
func cacheKey(content []byte, opts *Options) (key, input project.Digest) {
	input = project.HashBytes(content)

	var cfg []byte
	cfg = binary.BigEndian.AppendUint16(cfg, diskCacheSchemaVersion)
	cfg = append(cfg, strings.Join(opts.Markers, ",")...)
	cfg = append(cfg, 0)
	cfg = append(cfg, strings.Join(opts.Copied, ",")...)
	return project.Combine(input, project.HashBytes(cfg)), input
}

// ExpandOne runs the full pipeline for a single loaded file.
func ExpandOne(fileSet *source.FileSet, id source.FileID, opts *Options) FileResult {
	file := fileSet.Get(id)
	result := FileResult{Path: file.Path, FileID: id}

	key, input := cacheKey(file.Content, opts)
	if payload, hit, err := opts.Cache.Get(key, input); err == nil && hit {
		result.Output = payload.Output
		result.Bag = diag.NewBag(opts.maxDiagnostics())
		result.CacheHit = true
		result.OK = true
		return result
	}

	bag := diag.NewBag(opts.maxDiagnostics())
	result.Bag = bag
	rep := diag.BagReporter{Bag: bag}

	parsed := parser.ParseFile(file, parser.Options{Reporter: rep})
	if bag.HasErrors() || parsed.File == nil {
		return result
	}

	macro := expand.DefaultMacroOpts(opts.Markers, opts.Copied)
	res, ok := expand.ExpandFile(file, parsed.File, macro, rep)
	if !ok {
		return result
	}
	result.Output = res.Output
	result.OK = true

	if opts.Cache != nil {
		// Cache write failures only cost future speed.
		_ = opts.Cache.Put(key, &DiskPayload{
			Schema:    diskCacheSchemaVersion,
			InputHash: input,
			Output:    res.Output,
		})
	}
	return result
}
