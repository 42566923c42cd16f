// Package fs provides file system adapters for locating program sources.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProgramFinder = (*Walker)(nil)

// Walker locates program sources on disk.
type Walker struct {
	ignores []string
}

// NewWalker creates a new Walker. Directories and files whose name matches
// one of the ignore patterns are skipped, as is the default cache directory.
func NewWalker(ignores ...string) *Walker {
	return &Walker{ignores: append([]string{domain.DefaultCacheDirName}, ignores...)}
}

// FindPrograms expands directories in paths into the program files they
// contain. Other paths are returned unchanged, so that reading them reports
// the usual error.
func (w *Walker) FindPrograms(paths []string) ([]string, error) {
	var programs []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			programs = append(programs, path)
			continue
		}

		for file, err := range w.WalkFiles(path) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrProgramReadFailed.Error()), "path", path)
			}
			if strings.HasSuffix(file, domain.ProgramFileExt) {
				programs = append(programs, file)
			}
		}
	}
	return programs, nil
}

// WalkFiles yields all files below root in lexical order, skipping .git and
// ignored directories. Walking stops at the first error.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// The root itself is never skipped.
			if path != root {
				if skip, skipErr := w.shouldSkip(d); skip {
					return skipErr
				}
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// shouldSkip reports whether d is ignored. For directories the returned
// error is filepath.SkipDir.
func (w *Walker) shouldSkip(d fs.DirEntry) (bool, error) {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}

	for _, ignore := range w.ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
