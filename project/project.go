package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Project is a directory tree of LaTeX sources sharing one configuration.
type Project struct {
	RootDir    string
	ConfigFile string
	Config     Config
}

// Load opens the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom opens the project rooted at rootDir. The configuration file is
// optional.
func LoadFrom(rootDir string) (*Project, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	proj := &Project{
		RootDir: abs,
		Config:  DefaultConfig(),
	}
	if path := FindConfig(abs); path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		proj.ConfigFile = path
		proj.Config = cfg
	}
	return proj, nil
}

// SourceFiles lists the source files below the root, skipping hidden
// directories.
func (p *Project) SourceFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(p.RootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != p.RootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if p.Config.HasExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.RootDir, err)
	}
	return files, nil
}

// Neighbors lists the files in the directory of file having one of the
// given extensions, file itself excluded. Names are relative to that
// directory.
func (p *Project) Neighbors(file string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Dir(file))
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == filepath.Base(file) {
			continue
		}
		if slices.Contains(extensions, filepath.Ext(entry.Name())) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// MasterOf returns the master document configured for file, either in its
// properties file or project-wide.
func (p *Project) MasterOf(file string) (string, bool) {
	props, err := LoadProperties(file)
	if err == nil {
		if master, ok := props.Get(MasterFilenameKey); ok && master != "" {
			return p.resolve(filepath.Dir(file), master), true
		}
	}
	if p.Config.Master != "" {
		return p.resolve(p.RootDir, p.Config.Master), true
	}
	return "", false
}

// SetMaster records master as the master document of file.
func (p *Project) SetMaster(file, master string) error {
	props, err := LoadProperties(file)
	if err != nil {
		return err
	}
	props.Set(MasterFilenameKey, master)
	return props.Save()
}

func (p *Project) resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
