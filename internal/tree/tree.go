// Package tree holds the Structure Model of a file tree and the
// conversions between it and an ASCII tree diagram.
package tree

import (
	"path"
	"sort"
)

// Kind tells a file entry from a directory entry.
type Kind uint8

const (
	// KindFile is a leaf entry. It carries no data.
	KindFile Kind = iota
	// KindDir is a directory entry with (possibly zero) children.
	KindDir
)

// String returns a short label for the kind.
func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Entry is one named node of a Tree: either a file or a directory.
type Entry struct {
	Kind     Kind
	Children Tree
}

// NewFile returns a file entry.
func NewFile() Entry {
	return Entry{Kind: KindFile}
}

// NewDir returns a directory entry. A nil children map becomes an empty one.
func NewDir(children Tree) Entry {
	if children == nil {
		children = Tree{}
	}
	return Entry{Kind: KindDir, Children: children}
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// Tree maps entry names (single path segments) to entries.
type Tree map[string]Entry

// Raw is the shape the parser and scanners build before normalization:
// every entry is a mapping, and an empty mapping may still turn out to be a file.
type Raw map[string]Raw

// Names returns the entry names in lexicographic order.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raw converts the tree back to its pre-normalization shape.
// Files and empty directories both become empty mappings.
func (t Tree) Raw() Raw {
	raw := make(Raw, len(t))
	for name, entry := range t {
		if entry.IsDir() {
			raw[name] = entry.Children.Raw()
			continue
		}
		raw[name] = Raw{}
	}
	return raw
}

// Paths returns the slash-separated path of every file in depth-first name order.
func (t Tree) Paths() []string {
	var paths []string
	t.walk("", func(p string, e Entry) {
		if !e.IsDir() {
			paths = append(paths, p)
		}
	})
	return paths
}

// Count returns the number of directories and files in the tree.
func (t Tree) Count() (dirs, files int) {
	t.walk("", func(_ string, e Entry) {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	})
	return dirs, files
}

// walk visits every entry depth-first in name order.
func (t Tree) walk(prefix string, fn func(p string, e Entry)) {
	for _, name := range t.Names() {
		entry := t[name]
		p := name
		if prefix != "" {
			p = path.Join(prefix, name)
		}
		fn(p, entry)
		if entry.IsDir() {
			entry.Children.walk(p, fn)
		}
	}
}
