// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/pkg/scriptlib"
)

type (
	// Discovery scans the libraries directory and fills a Registry.
	// It is not reentrant: callers serialize Discover calls.
	Discovery struct {
		registry     *Registry
		librariesDir string
		strict       bool
		sortByName   bool
	}

	// Option configures a Discovery.
	Option func(*Discovery)

	// Result is the outcome of one discovery pass.
	Result struct {
		// Libraries are the libraries now in the registry, in discovery order.
		Libraries []*ScriptLibrary
		// Diagnostics describe directories that were skipped or failed.
		Diagnostics []Diagnostic
	}
)

// WithLibrariesDir sets the directory holding one sub-directory per library.
func WithLibrariesDir(dir string) Option {
	return func(d *Discovery) { d.librariesDir = dir }
}

// WithStrict makes the first library that fails to load abort the pass and
// leave the registry empty. By default the failure is reported as a
// diagnostic and the remaining libraries are still registered.
func WithStrict(strict bool) Option {
	return func(d *Discovery) { d.strict = strict }
}

// WithSortByName orders libraries by directory name. When false, the raw
// directory enumeration order of the filesystem is kept. Default is true.
func WithSortByName(sortByName bool) Option {
	return func(d *Discovery) { d.sortByName = sortByName }
}

// New creates a Discovery that populates registry.
func New(registry *Registry, opts ...Option) *Discovery {
	d := &Discovery{registry: registry, sortByName: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry Discover populates.
func (d *Discovery) Registry() *Registry { return d.registry }

// LibrariesDir returns the scanned directory.
func (d *Discovery) LibrariesDir() string { return d.librariesDir }

// Discover rebuilds the registry from the libraries directory.
//
// A missing or unreadable libraries directory empties the registry and is
// reported as a diagnostic, not an error. An error is returned only when the
// context is canceled or, in strict mode, when a library fails to load.
func (d *Discovery) Discover(ctx context.Context) (Result, error) {
	var result Result

	entries, diag, ok := d.listEntries()
	if !ok {
		d.registry.Clear()
		result.Diagnostics = append(result.Diagnostics, diag)
		return result, nil
	}

	var libs []*ScriptLibrary
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("library discovery canceled: %w", ctx.Err())
		default:
		}

		dir := filepath.Join(d.librariesDir, entry.Name())
		if !isDir(entry, dir) {
			continue
		}

		if !scriptlib.IsLibrary(dir) {
			slog.Debug("skipping directory without library manifest", "path", dir)
			result.Diagnostics = append(result.Diagnostics, newDiagnostic(
				SeverityInfo, CodeNotALibrary, dir,
				fmt.Sprintf("%s has no %s or %s", entry.Name(), scriptlib.CUEManifestName, scriptlib.YAMLManifestName),
				nil))
			continue
		}

		lib, err := scriptlib.Load(dir)
		if err != nil {
			if d.strict {
				d.registry.Clear()
				return result, issue.NewErrorContext().
					WithOperation("load script library").
					WithResource(dir).
					WithSuggestion("Fix the library manifest or remove the library directory").
					WithSuggestion("Disable discovery.strict to load the remaining libraries").
					WithIssue(issue.LibraryLoadFailedId).
					Wrap(err).
					BuildError()
			}
			slog.Warn("failed to load script library", "path", dir, "error", err)
			result.Diagnostics = append(result.Diagnostics, newDiagnostic(
				SeverityError, CodeLibraryLoadFailed, dir,
				fmt.Sprintf("library %q failed to load: %v", entry.Name(), err),
				err))
			continue
		}

		slog.Debug("loaded script library", "name", lib.Name, "items", len(lib.Items()))
		libs = append(libs, newScriptLibrary(lib))
	}

	d.registry.Replace(libs)
	result.Libraries = d.registry.Libraries()
	return result, nil
}

// listEntries enumerates the libraries directory. os.ReadDir sorts by name;
// File.ReadDir keeps the filesystem's own order.
func (d *Discovery) listEntries() ([]fs.DirEntry, Diagnostic, bool) {
	if d.librariesDir == "" {
		return nil, newDiagnostic(SeverityWarning, CodeLibrariesDirMissing, "",
			"no libraries directory configured", nil), false
	}

	var (
		entries []fs.DirEntry
		err     error
	)
	if d.sortByName {
		entries, err = os.ReadDir(d.librariesDir)
	} else {
		entries, err = readDirUnsorted(d.librariesDir)
	}

	switch {
	case err == nil:
		return entries, Diagnostic{}, true
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("libraries directory not found", "path", d.librariesDir)
		return nil, newDiagnostic(SeverityWarning, CodeLibrariesDirMissing, d.librariesDir,
			"libraries directory does not exist", err), false
	default:
		slog.Warn("cannot read libraries directory", "path", d.librariesDir, "error", err)
		return nil, newDiagnostic(SeverityError, CodeLibrariesDirUnreadable, d.librariesDir,
			fmt.Sprintf("cannot read libraries directory: %v", err), err), false
	}
}

func readDirUnsorted(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return f.ReadDir(-1)
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
