package codebase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dhamidi/texls/latex/completion"
	"github.com/dhamidi/texls/latex/parser"
	"github.com/dhamidi/texls/project"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("texls.codebase")

type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	engine  *completion.Engine
	files   map[string]*FileInfo
	open    map[string]bool
}

// FileInfo is the result of parsing one file. Doc is nil when the parse
// was aborted; the fatal issue is then the last entry of Issues.
type FileInfo struct {
	Path    string
	Content string
	Doc     *parser.Document
	Issues  []parser.Issue
	Tasks   []parser.Issue
	Context completion.Context
	Lines   *parser.LineIndex
	// Master is the master document resolved when the file was parsed,
	// empty when none is known.
	Master string
}

func (f *FileInfo) Aborted() bool {
	return f.Doc == nil
}

func New(proj *project.Project) *Codebase {
	return &Codebase{
		project: proj,
		engine:  completion.NewEngine(proj.Config.PrefixWindow),
		files:   make(map[string]*FileInfo),
		open:    make(map[string]bool),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

func (c *Codebase) ScanAll() error {
	paths, err := c.project.SourceFiles()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := c.ScanFile(path); err != nil {
			log.Warningf("skipping %s: %s", path, err)
		}
	}
	log.Infof("scanned %d files below %s", len(paths), c.project.RootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.UpdateFile(path, string(content))
	return nil
}

func (c *Codebase) UpdateFile(path, content string) *FileInfo {
	info := parseFile(path, content)
	if info.Doc != nil && info.Doc.IsMaster() {
		info.Master = path
	} else if master, ok := c.project.MasterOf(path); ok {
		info.Master = master
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

func parseFile(path, content string) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
		Lines:   parser.NewLineIndex(content),
	}

	var issues parser.IssueList
	doc, err := parser.Parse(content, path, &issues)
	info.Issues = issues
	if err != nil {
		var abort *parser.AbortError
		if errors.As(err, &abort) {
			log.Debugf("parse of %s aborted: %s", path, abort.Issue.Message)
		}
		return info
	}

	info.Doc = doc
	info.Tasks = doc.Tasks()
	info.Context = completion.Harvest(doc)
	log.Debugf("parsed %s: %d issues, %d tasks", path, len(info.Issues), len(info.Tasks))
	return info
}

// Refresh reparses the stored content of path, picking up a changed
// master. It reports whether path is known.
func (c *Codebase) Refresh(path string) bool {
	f := c.GetFile(path)
	if f == nil {
		return false
	}
	c.UpdateFile(path, f.Content)
	return true
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known files in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.files)
}

// SetOpen marks path as owned by an editor session. Open files are not
// refreshed from disk by the watcher.
func (c *Codebase) SetOpen(path string, open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if open {
		c.open[path] = true
	} else {
		delete(c.open, path)
	}
}

func (c *Codebase) IsOpen(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open[path]
}

// Issues returns the structural issues of path followed by its tasks.
func (c *Codebase) Issues(path string) []parser.Issue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.files[path]
	if f == nil {
		return nil
	}
	return slices.Concat(f.Issues, f.Tasks)
}

// MasterOf returns the master document of path. A master document is its
// own master. The second result is false when no master is known.
func (c *Codebase) MasterOf(path string) (string, bool) {
	if f := c.GetFile(path); f != nil {
		return f.Master, f.Master != ""
	}
	return c.project.MasterOf(path)
}

// Complete proposes completions for the cursor at the character offset of
// path. Names defined in the master and in the files sharing it are
// offered along with the file's own.
func (c *Codebase) Complete(path string, offset int) []completion.Item {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	runes := []rune(f.Content)
	offset = max(0, min(offset, len(runes)))

	ctx := c.contextFor(path)
	exts := slices.Concat(c.project.Config.Extensions, c.project.Config.NeighborExtensions)
	if neighbors, err := c.project.Neighbors(path, exts); err == nil {
		ctx.Files = neighbors
	} else {
		log.Debugf("no neighbors for %s: %s", path, err)
	}

	return c.engine.Complete(ctx, string(runes[:offset]))
}

func (c *Codebase) contextFor(path string) completion.Context {
	master, hasMaster := c.MasterOf(path)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var ctx completion.Context
	if f := c.files[path]; f != nil {
		ctx.Merge(f.Context)
	}
	if !hasMaster {
		return ctx
	}
	if f := c.files[master]; f != nil {
		ctx.Merge(f.Context)
	}
	for _, other := range sortedKeys(c.files) {
		if other == path || other == master {
			continue
		}
		if f := c.files[other]; f.Master == master {
			ctx.Merge(f.Context)
		}
	}
	return ctx
}

func sortedKeys(files map[string]*FileInfo) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Rel returns path relative to the project root when it lies below it.
func (c *Codebase) Rel(path string) string {
	if rel, err := filepath.Rel(c.project.RootDir, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return path
}
