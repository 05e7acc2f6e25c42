package fsops

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/salmonumbrella/filetree-cli/internal/logging"
	"github.com/salmonumbrella/filetree-cli/internal/tree"
)

// Default permissions for created entries.
const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// MaterializeOptions controls Materialize.
type MaterializeOptions struct {
	DryRun   bool
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Logger   *slog.Logger
}

// Action kinds reported in a Result.
const (
	ActionMkdir    = "mkdir"
	ActionDirExist = "exists"
	ActionTouch    = "touch"
	ActionTruncate = "truncate"
)

// Action is one filesystem operation performed (or planned in dry-run mode).
type Action struct {
	Op   string `json:"op" yaml:"op"`
	Path string `json:"path" yaml:"path"`
}

// Result summarizes a Materialize call.
type Result struct {
	Base        string   `json:"base_dir" yaml:"base_dir"`
	DryRun      bool     `json:"dry_run" yaml:"dry_run"`
	Directories int      `json:"directories" yaml:"directories"`
	Files       int      `json:"files" yaml:"files"`
	Actions     []Action `json:"actions" yaml:"actions"`
}

// Materialize creates every directory of t under base and every file as an
// empty file. Existing directories are kept, existing files are truncated.
// Entries created before a failure are left in place.
func Materialize(t tree.Tree, base string, opts MaterializeOptions) (Result, error) {
	if opts.DirPerm == 0 {
		opts.DirPerm = DefaultDirPerm
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = DefaultFilePerm
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	m := &materializer{base: base, opts: opts, result: Result{Base: base, DryRun: opts.DryRun}}
	if err := m.ensureDir(base, false); err != nil {
		return m.result, err
	}
	if err := m.apply(t, nil); err != nil {
		return m.result, err
	}
	return m.result, nil
}

type materializer struct {
	base   string
	opts   MaterializeOptions
	result Result
}

func (m *materializer) apply(t tree.Tree, parents []string) error {
	for _, name := range t.Names() {
		entry := t[name]
		elems := append(append([]string(nil), parents...), name)

		target, err := SafeJoin(m.base, elems...)
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if err := m.ensureDir(target, true); err != nil {
				return err
			}
			if err := m.apply(entry.Children, elems); err != nil {
				return err
			}
			continue
		}
		if err := m.ensureFile(target); err != nil {
			return err
		}
	}
	return nil
}

func (m *materializer) record(op, path string) {
	m.result.Actions = append(m.result.Actions, Action{Op: op, Path: path})
	m.opts.Logger.Debug(op, "path", path, "dry_run", m.opts.DryRun)
}

func (m *materializer) ensureDir(path string, count bool) error {
	if count {
		m.result.Directories++
	}

	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		m.record(ActionDirExist, path)
		return nil

	case err == nil:
		return fmt.Errorf("conflict: %s exists and is not a directory", path)

	case os.IsNotExist(err):
		if !m.opts.DryRun {
			if err := os.MkdirAll(path, m.opts.DirPerm); err != nil {
				return fmt.Errorf("mkdir %s: %w", path, err)
			}
		}
		m.record(ActionMkdir, path)
		return nil

	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

func (m *materializer) ensureFile(path string) error {
	m.result.Files++

	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("conflict: %s exists and is a directory", path)

	case err == nil:
		if !m.opts.DryRun {
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, m.opts.FilePerm)
			if err != nil {
				return fmt.Errorf("truncate %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("truncate %s: %w", path, err)
			}
		}
		m.record(ActionTruncate, path)
		return nil

	case os.IsNotExist(err):
		if !m.opts.DryRun {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, m.opts.FilePerm)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
		}
		m.record(ActionTouch, path)
		return nil

	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}
