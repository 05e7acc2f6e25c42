// Package fsops reads directory trees from disk and writes them back as
// empty files and directories.
package fsops

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/salmonumbrella/filetree-cli/internal/logging"
	"github.com/salmonumbrella/filetree-cli/internal/tree"
)

// ScanOptions controls Scan.
type ScanOptions struct {
	// Exclude holds doublestar patterns matched against the slash-separated
	// path relative to the scan root and against the entry's base name.
	Exclude []string
	// KeepEmptyDirs keeps empty directories as directories. Otherwise the
	// result is normalized and they become files.
	KeepEmptyDirs bool
	Logger        *slog.Logger
}

// Scan walks root and returns its structure. Symlinks are recorded as files
// and never followed.
func Scan(root string, opts ScanOptions) (tree.Tree, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	s := scanner{root: root, opts: opts}
	t, err := s.scanDir(root, "")
	if err != nil {
		return nil, err
	}
	if opts.KeepEmptyDirs {
		return t, nil
	}
	return tree.Normalize(t.Raw()), nil
}

type scanner struct {
	root string
	opts ScanOptions
}

func (s scanner) scanDir(dir, rel string) (tree.Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	s.opts.Logger.Debug("scan dir", "path", dir, "entries", len(entries))

	t := make(tree.Tree, len(entries))
	for _, e := range entries {
		name := e.Name()
		relPath := path.Join(rel, name)
		if s.excluded(relPath, name) {
			s.opts.Logger.Debug("excluded", "path", relPath)
			continue
		}

		// DirEntry.Type comes from Lstat, so symlinks to directories are not dirs here.
		if e.Type()&fs.ModeSymlink == 0 && e.IsDir() {
			children, err := s.scanDir(filepath.Join(dir, name), relPath)
			if err != nil {
				return nil, err
			}
			t[name] = tree.NewDir(children)
			continue
		}
		t[name] = tree.NewFile()
	}
	return t, nil
}

func (s scanner) excluded(relPath, name string) bool {
	for _, pattern := range s.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
