package codebase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/dhamidi/texls/project"
)

// FileWatcher keeps the codebase in sync with source files changed outside
// the editor. Files open in an editor session are left alone.
type FileWatcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher

	// OnUpdate is called after a file was reparsed or removed.
	OnUpdate func(path string)
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{codebase: c}
}

// Start watches every non-hidden directory below the project root until
// ctx is done.
func (w *FileWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.watcher = watcher

	if err := w.addTree(w.codebase.RootDir()); err != nil {
		watcher.Close()
		return err
	}

	go w.run(ctx)
	return nil
}

func (w *FileWatcher) run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher: %s", err)
		}
	}
}

func (w *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *FileWatcher) handle(event fsnotify.Event) {
	path := event.Name

	if source, ok := project.PropertiesSource(path); ok {
		if !event.Has(fsnotify.Chmod) && w.codebase.Refresh(source) {
			log.Debugf("master of %s changed", source)
			if w.OnUpdate != nil {
				w.OnUpdate(source)
			}
		}
		return
	}

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if event.Has(fsnotify.Create) && w.watcher != nil && !isHidden(path) {
				if err := w.addTree(path); err != nil {
					log.Warningf("%s", err)
				}
			}
			return
		}
		if !w.codebase.Project().Config.HasExtension(path) || w.codebase.IsOpen(path) {
			return
		}
		if err := w.codebase.ScanFile(path); err != nil {
			log.Warningf("%s", err)
			return
		}
		log.Debugf("reparsed %s", path)
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if w.codebase.GetFile(path) == nil || w.codebase.IsOpen(path) {
			return
		}
		w.codebase.RemoveFile(path)
		log.Debugf("removed %s", path)
	default:
		return
	}

	if w.OnUpdate != nil {
		w.OnUpdate(path)
	}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
