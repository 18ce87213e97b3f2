// Package config loads the optional axoproject.toml that sets defaults for
// the command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"axoproject/internal/diagfmt"
	"axoproject/internal/manifest"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "axoproject.toml"

// Config is the decoded configuration file.
type Config struct {
	Detect     DetectConfig     `toml:"detect"`
	Repository RepositoryConfig `toml:"repository"`
	Output     OutputConfig     `toml:"output"`
}

type DetectConfig struct {
	// Ecosystems lists the enabled detectors in priority order.
	Ecosystems []string `toml:"ecosystems"`
	// Jobs bounds concurrent detectors; 0 means one per detector.
	Jobs int `toml:"jobs"`
}

type RepositoryConfig struct {
	Hosts []string `toml:"hosts"`
}

type OutputConfig struct {
	Format   string `toml:"format"`    // pretty|short|json|msgpack|sarif
	Color    string `toml:"color"`     // auto|always|never
	Width    int    `toml:"width"`     // help text wrap, 0 - terminal width
	PathMode string `toml:"path_mode"` // auto|absolute|relative|basename
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Detect: DetectConfig{
			Ecosystems: []string{
				string(manifest.EcosystemCargo),
				string(manifest.EcosystemNpm),
				string(manifest.EcosystemDist),
			},
		},
		Repository: RepositoryConfig{Hosts: []string{"github.com"}},
		Output:     OutputConfig{Format: "pretty", Color: "auto", PathMode: "auto"},
	}
}

// Load looks for FileName from dir upwards. Without one it returns Default
// and an empty path.
func Load(dir string) (Config, string, error) {
	path, err := manifest.Find(dir, FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), "", nil
		}
		return Config{}, "", err
	}
	cfg, err := LoadFile(path)
	return cfg, path, err
}

// LoadFile decodes path over Default and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML typing cannot.
func (c Config) Validate() error {
	known := []string{string(manifest.EcosystemCargo), string(manifest.EcosystemNpm), string(manifest.EcosystemDist)}
	seen := map[string]bool{}
	for _, e := range c.Detect.Ecosystems {
		if !slices.Contains(known, e) {
			return fmt.Errorf("[detect].ecosystems: unknown ecosystem %q (expected: %s)", e, strings.Join(known, ", "))
		}
		if seen[e] {
			return fmt.Errorf("[detect].ecosystems: %q listed twice", e)
		}
		seen[e] = true
	}
	if c.Detect.Jobs < 0 {
		return fmt.Errorf("[detect].jobs must not be negative, got %d", c.Detect.Jobs)
	}
	for _, h := range c.Repository.Hosts {
		if strings.TrimSpace(h) == "" || strings.Contains(h, "/") {
			return fmt.Errorf("[repository].hosts: %q is not a host name", h)
		}
	}
	if _, err := diagfmt.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("[output].format: %w", err)
	}
	if _, err := diagfmt.ParsePathMode(c.Output.PathMode); err != nil {
		return fmt.Errorf("[output].path_mode: %w", err)
	}
	switch c.Output.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("[output].color: invalid value %q (expected: auto|always|never)", c.Output.Color)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("[output].width must not be negative, got %d", c.Output.Width)
	}
	return nil
}
