package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "gentests.toml"

// DefaultSuffix replaces the ".rs" extension of expanded files.
const DefaultSuffix = ".gen.rs"

// Config is the decoded manifest content. Every section is optional;
// attribute-level configuration in the source always wins over the
// manifest, and the manifest wins over built-ins.
type Config struct {
	Attrs  AttrsConfig  `toml:"attrs"`
	Output OutputConfig `toml:"output"`
}

// AttrsConfig overrides the built-in attribute classification sets.
type AttrsConfig struct {
	Markers []string `toml:"markers"`
	Copied  []string `toml:"copied"`
}

// OutputConfig controls where expanded files go.
type OutputConfig struct {
	// Suffix replaces the input's ".rs" extension, ".gen.rs" by default.
	Suffix string `toml:"suffix"`
	// Dir redirects output files into a directory instead of placing
	// them next to their inputs.
	Dir string `toml:"dir"`
}

// Manifest is a located and decoded gentests.toml.
type Manifest struct {
	Path   string // manifest file path, "" when defaults are in effect
	Root   string
	Config Config
}

// FindManifest walks up from startDir to locate the manifest file.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes the nearest manifest. When none exists
// the returned manifest carries the built-in defaults.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Manifest{Config: Config{Output: OutputConfig{Suffix: DefaultSuffix}}}, nil
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = DefaultSuffix
	} else if !strings.HasSuffix(cfg.Output.Suffix, ".rs") {
		return Config{}, fmt.Errorf("%s: [output].suffix must end in .rs", path)
	}
	return cfg, nil
}

// OutputPath maps an input file to its expansion target.
func (m *Manifest) OutputPath(input string) string {
	base := strings.TrimSuffix(input, ".rs") + m.Config.Output.Suffix
	if m.Config.Output.Dir == "" {
		return base
	}
	return filepath.Join(m.Config.Output.Dir, filepath.Base(base))
}
