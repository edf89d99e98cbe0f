package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// MasterFilenameKey names the master document of a fragment.
const MasterFilenameKey = "MasterFilename"

// Properties is the hidden metadata file kept next to a source file.
type Properties struct {
	path   string
	values map[string]string
}

const propertiesSuffix = ".properties.toml"

func PropertiesPath(file string) string {
	return filepath.Join(filepath.Dir(file), "."+filepath.Base(file)+propertiesSuffix)
}

// PropertiesSource returns the source file a properties file belongs to.
func PropertiesSource(path string) (string, bool) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, propertiesSuffix) {
		return "", false
	}
	source := strings.TrimPrefix(strings.TrimSuffix(name, propertiesSuffix), ".")
	if source == "" {
		return "", false
	}
	return filepath.Join(filepath.Dir(path), source), true
}

// LoadProperties reads the properties of file. A missing properties file
// yields empty properties.
func LoadProperties(file string) (*Properties, error) {
	p := &Properties{
		path:   PropertiesPath(file),
		values: make(map[string]string),
	}
	if _, err := toml.DecodeFile(p.path, &p.values); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read properties: %w", err)
	}
	return p, nil
}

func (p *Properties) Path() string {
	return p.path
}

func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Properties) Set(key, value string) {
	p.values[key] = value
}

func (p *Properties) Save() error {
	f, err := os.Create(p.path)
	if err != nil {
		return fmt.Errorf("save properties: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(p.values); err != nil {
		return fmt.Errorf("save properties: %w", err)
	}
	return f.Close()
}
