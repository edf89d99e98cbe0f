package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Names probed in the project root, in order.
var configNames = []string{"texls.toml", "texls.yaml", "texls.yml"}

type Config struct {
	// Extensions of the files parsed by the codebase and the watcher.
	Extensions []string `toml:"extensions" yaml:"extensions"`
	// NeighborExtensions of the files offered when completing file arguments.
	NeighborExtensions []string `toml:"neighbor_extensions" yaml:"neighbor_extensions"`
	// PrefixWindow is the number of characters left of the cursor handed
	// to the prefix parser.
	PrefixWindow int `toml:"prefix_window" yaml:"prefix_window"`
	// Master is the project-wide master file, relative to the root.
	Master string     `toml:"master" yaml:"master"`
	HTTP   HTTPConfig `toml:"http" yaml:"http"`
}

type HTTPConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

func DefaultConfig() Config {
	return Config{
		Extensions:         []string{".tex"},
		NeighborExtensions: []string{".tex", ".bib", ".png", ".pdf", ".jpg", ".eps", ".ps"},
		PrefixWindow:       2000,
		HTTP:               HTTPConfig{Addr: "127.0.0.1:8765"},
	}
}

// FindConfig returns the path of the configuration file in dir, or "".
func FindConfig(dir string) string {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfig reads a TOML or YAML configuration file, chosen by extension.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.PrefixWindow <= 0 {
		return fmt.Errorf("prefix_window must be positive, got %d", c.PrefixWindow)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, ext := range slices.Concat(c.Extensions, c.NeighborExtensions) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// HasExtension reports whether path is a source file of the project.
func (c Config) HasExtension(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}
