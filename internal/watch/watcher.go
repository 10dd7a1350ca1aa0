// SPDX-License-Identifier: MPL-2.0

// Package watch rediscovers script libraries when the libraries directory
// changes.
//
// The watcher observes the libraries directory and each library directory
// inside it. Adding, removing or renaming a library, or editing a library
// manifest, schedules a reload. Events within the debounce window are
// coalesced so the reload runs once for the whole burst.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/creative-designer/cdlib/internal/discovery"
	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/pkg/scriptlib"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period used when Config.Debounce is not positive.
const defaultDebounce = 500 * time.Millisecond

var (
	// triggerPatterns select the paths, relative to the libraries directory,
	// whose changes require a new discovery pass. Top-level matches count
	// only for directories, see libraryChange.
	triggerPatterns = []string{
		"*",
		"*/" + scriptlib.CUEManifestName,
		"*/" + scriptlib.YAMLManifestName,
	}

	// ignorePatterns filter editor and OS noise.
	ignorePatterns = []string{
		".*",
		"**/.*.swp",
		"**/*.swo",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Reloader rebuilds the library registry. *session.Session implements it.
	Reloader interface {
		Reload(ctx context.Context) (discovery.Result, error)
	}

	// Config holds the parameters for a Watcher.
	Config struct {
		// LibrariesDir is the directory holding one sub-directory per library.
		LibrariesDir string
		// Debounce is the quiet period after the last event before reloading.
		Debounce time.Duration
		// Reloader is called once per debounced burst.
		Reloader Reloader
		// OnReload, when set, receives the changed paths (relative to
		// LibrariesDir) and the outcome of each reload.
		OnReload func(changed []string, result discovery.Result, err error)
	}

	// Watcher monitors the libraries directory. Run must be called exactly
	// once; calling it a second time returns an error.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		baseDir  string
		debounce time.Duration
		started  atomic.Bool

		// libDirs holds the names of the watched library directories. It is
		// only touched by New and the Run goroutine.
		libDirs map[string]struct{}
	}
)

// New creates a Watcher for cfg.LibrariesDir and registers the directory and
// every library directory inside it.
func New(cfg Config) (*Watcher, error) {
	if cfg.Reloader == nil {
		return nil, errors.New("watch: no reloader configured")
	}

	absBase, err := filepath.Abs(cfg.LibrariesDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve libraries directory: %w", err)
	}
	if info, statErr := os.Stat(absBase); statErr != nil || !info.IsDir() {
		if statErr == nil {
			statErr = fmt.Errorf("%s is not a directory", absBase)
		}
		return nil, issue.NewErrorContext().
			WithOperation("watch libraries").
			WithResource(absBase).
			WithSuggestion("Create the directory or point --libraries-dir at an existing one").
			WithIssue(issue.LibrariesDirNotFoundId).
			Wrap(statErr).
			BuildError()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		baseDir:  absBase,
		debounce: debounce,
		libDirs:  make(map[string]struct{}),
	}
	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			slog.Warn("watch: close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is canceled, reloading after every debounced burst of
// relevant events. It returns nil on cancellation and propagates fatal
// watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may run after ctx is canceled because it is scheduled by
	// time.AfterFunc. A reload still in progress makes it reschedule itself
	// so the pending set is not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			slog.Debug("watch: reload still running, rescheduling")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		slog.Debug("watch: reloading libraries", "changed", changed)
		result, err := w.cfg.Reloader.Reload(ctx)
		if err != nil {
			slog.Warn("watch: reload failed", "error", err)
		}
		if w.cfg.OnReload != nil {
			w.cfg.OnReload(changed, result, err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			slog.Warn("watch: close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil || !relevant(rel) {
				continue
			}

			if !strings.Contains(filepath.ToSlash(rel), "/") && !w.libraryChange(evt.Name) {
				continue
			}

			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			slog.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// addDirectories registers the libraries directory and its immediate
// sub-directories. Deeper folders never hold a manifest.
func (w *Watcher) addDirectories() error {
	if err := w.fsw.Add(w.baseDir); err != nil {
		return fmt.Errorf("watch: add directory %q: %w", w.baseDir, err)
	}
	entries, err := os.ReadDir(w.baseDir)
	if err != nil {
		return fmt.Errorf("watch: list %q: %w", w.baseDir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		w.maybeAddDir(filepath.Join(w.baseDir, e.Name()))
	}
	return nil
}

// maybeAddDir adds path when it is a non-ignored directory and reports
// whether it did.
func (w *Watcher) maybeAddDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	name := filepath.Base(path)
	if isIgnored(name) {
		return false
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		slog.Warn("watch: add library directory", "path", path, "error", addErr)
	}
	w.libDirs[name] = struct{}{}
	return true
}

// libraryChange reports whether an event on a top-level entry concerns a
// library directory. Plain files such as a README never do. A directory
// that disappeared counts when it was watched before.
func (w *Watcher) libraryChange(path string) bool {
	if w.maybeAddDir(path) {
		return true
	}
	name := filepath.Base(path)
	if _, ok := w.libDirs[name]; ok {
		delete(w.libDirs, name)
		return true
	}
	return false
}

// relevant reports whether a change at rel (relative to the libraries
// directory) can alter the discovery result.
func relevant(rel string) bool {
	normalized := filepath.ToSlash(rel)
	if normalized == "." || isIgnored(normalized) {
		return false
	}
	for _, pat := range triggerPatterns {
		if ok, err := doublestar.Match(pat, normalized); err == nil && ok {
			return true
		}
	}
	return false
}

// isFatalFsnotifyError reports whether err leaves the watcher unable to
// deliver further events.
func isFatalFsnotifyError(err error) bool {
	return slices.ContainsFunc(fatalErrnos, func(errno syscall.Errno) bool {
		return errors.Is(err, errno)
	})
}

func isIgnored(rel string) bool {
	for _, pat := range ignorePatterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}
