// SPDX-License-Identifier: MPL-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/creative-designer/cdlib/internal/category"
	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/discovery"
	"github.com/creative-designer/cdlib/internal/libpaths"
	"github.com/creative-designer/cdlib/internal/preview"
	"github.com/creative-designer/cdlib/pkg/assetkind"
)

var (
	// ErrUnknownLibrary is returned when selecting a library that was not discovered.
	ErrUnknownLibrary = errors.New("unknown script library")
	// ErrUnknownCategory is returned when selecting a category folder that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
)

type (
	// Session is the explicit context object every library operation goes through.
	Session struct {
		mu            sync.RWMutex
		root          string
		store         *libpaths.Store
		settings      *libpaths.Settings
		settingsErr   error
		discovery     *discovery.Discovery
		lastDiscovery discovery.Result
		activeScript  string
		selections    *category.Selections
		previews      *preview.Cache
	}

	// Option configures Open.
	Option func(*openOptions)

	openOptions struct {
		settingsDir string
	}
)

// WithSettingsDir sets the directory holding the settings file. Default is
// the configuration directory.
func WithSettingsDir(dir string) Option {
	return func(o *openOptions) { o.settingsDir = dir }
}

// Open builds a session from cfg: it loads the settings file and runs a
// first discovery pass. A malformed settings file does not fail Open; empty
// settings are used and the problem is reported by SettingsError.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	root, err := cfg.ResolveLibraryRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library root: %w", err)
	}
	librariesDir, err := cfg.ResolveLibrariesDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve libraries directory: %w", err)
	}
	if o.settingsDir == "" {
		if o.settingsDir, err = config.ConfigDir(); err != nil {
			return nil, fmt.Errorf("failed to resolve settings directory: %w", err)
		}
	}

	s := &Session{
		root:       root,
		store:      libpaths.NewStore(o.settingsDir),
		selections: category.NewSelections(),
		previews:   preview.NewCache(preview.WithImagePatterns(cfg.Preview.ImagePatterns)),
		discovery: discovery.New(discovery.NewRegistry(),
			discovery.WithLibrariesDir(librariesDir),
			discovery.WithStrict(cfg.Discovery.Strict),
			discovery.WithSortByName(cfg.Discovery.SortByName),
		),
	}

	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the settings file and rebuilds the library registry.
func (s *Session) Reload(ctx context.Context) (discovery.Result, error) {
	s.reloadSettings()

	result, err := s.discovery.Discover(ctx)

	s.mu.Lock()
	s.lastDiscovery = result
	s.mu.Unlock()

	return result, err
}

func (s *Session) reloadSettings() {
	settings, err := s.store.Load()
	if err != nil {
		slog.Warn("ignoring unreadable library paths file", "path", s.store.Path, "error", err)
		settings = libpaths.NewSettings()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.settingsErr = err
}

// SettingsError returns the error of the last settings load, or nil.
func (s *Session) SettingsError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsErr
}

// Diagnostics returns the diagnostics of the last discovery pass.
func (s *Session) Diagnostics() []discovery.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastDiscovery.Diagnostics
}

// LibraryRoot returns the directory the default folders live under.
func (s *Session) LibraryRoot() string { return s.root }

// SettingsPath returns the settings file path.
func (s *Session) SettingsPath() string { return s.store.Path }

// LibrariesDir returns the scanned libraries directory.
func (s *Session) LibrariesDir() string { return s.discovery.LibrariesDir() }

// Registry returns the discovered libraries.
func (s *Session) Registry() *discovery.Registry { return s.discovery.Registry() }

// Settings returns a copy of the current overrides.
func (s *Session) Settings() *libpaths.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

func (s *Session) resolver() *libpaths.Resolver {
	s.mu.RLock()
	settings := s.settings.Clone()
	s.mu.RUnlock()
	return &libpaths.Resolver{
		Root:             s.root,
		Settings:         settings,
		ActiveScriptPath: s.activeScriptPath,
	}
}

// EffectivePath returns the authoritative folder of kind.
func (s *Session) EffectivePath(kind assetkind.Kind) string {
	return s.resolver().EffectivePath(kind)
}

// Source reports where EffectivePath(kind) comes from.
func (s *Session) Source(kind assetkind.Kind) libpaths.Source {
	return s.resolver().Source(kind)
}

// SetOverride sets the override of kind and rewrites the settings file.
// An empty path clears the override. A path that does not exist is kept in
// memory but written to the file as empty.
func (s *Session) SetOverride(kind assetkind.Kind, path string) error {
	if ok, errs := kind.IsValid(); !ok {
		return errs[0]
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	s.mu.Lock()
	next := s.settings.Clone()
	next.SetOverride(kind, path)
	if err := s.store.Save(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.settings = next
	s.mu.Unlock()

	if !libpaths.Exists(path) && path != "" {
		slog.Debug("override saved but folder does not exist", "kind", kind, "path", path)
	}
	return nil
}

// ActiveScriptLibrary returns the selected script library when it is still
// registered, else the first discovered library.
func (s *Session) ActiveScriptLibrary() (*discovery.ScriptLibrary, bool) {
	s.mu.RLock()
	name := s.activeScript
	s.mu.RUnlock()

	reg := s.discovery.Registry()
	if name != "" {
		if lib, ok := reg.Lookup(name); ok {
			return lib, true
		}
	}
	return reg.First()
}

// SelectScriptLibrary makes name the active script library.
func (s *Session) SelectScriptLibrary(name string) error {
	if _, ok := s.discovery.Registry().Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLibrary, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeScript = name
	return nil
}

func (s *Session) activeScriptPath() string {
	if lib, ok := s.ActiveScriptLibrary(); ok {
		return lib.LibraryPath
	}
	return ""
}

// Categories lists the category folders of kind.
func (s *Session) Categories(kind assetkind.Kind) []string {
	return category.ListSubfolders(s.EffectivePath(kind))
}

// ActiveCategory returns the active category of kind, or category.None.
func (s *Session) ActiveCategory(kind assetkind.Kind) string {
	return s.selections.Active(kind, s.Categories(kind))
}

// SelectCategory makes name the active category of kind. category.None
// clears the selection.
func (s *Session) SelectCategory(kind assetkind.Kind, name string) error {
	if name != category.None {
		folders := s.Categories(kind)
		if category.ActiveCategory(name, folders) != name {
			return fmt.Errorf("%w: %q has no folder %q", ErrUnknownCategory, s.EffectivePath(kind), name)
		}
	}
	s.selections.Set(kind, name)
	return nil
}

// CategoryPreviews lists the category folders of kind as preview items.
func (s *Session) CategoryPreviews(kind assetkind.Kind) []preview.Item {
	path := s.EffectivePath(kind)
	return s.previews.Folders(path, categoriesKey(kind, path))
}

// Previews lists the thumbnails of the active category of kind. force
// rebuilds a cached listing.
func (s *Session) Previews(kind assetkind.Kind, force bool) []preview.Item {
	dir, ok := s.activeCategoryDir(kind)
	if !ok {
		return nil
	}
	return s.previews.Images(dir, imagesKey(kind, dir), force)
}

// ResetPreviews drops the cached listings of kind's current folder and its
// active category.
func (s *Session) ResetPreviews(kind assetkind.Kind) {
	s.previews.Reset(categoriesKey(kind, s.EffectivePath(kind)))
	if dir, ok := s.activeCategoryDir(kind); ok {
		s.previews.Reset(imagesKey(kind, dir))
	}
}

func (s *Session) activeCategoryDir(kind assetkind.Kind) (string, bool) {
	active := s.ActiveCategory(kind)
	if active == category.None {
		return "", false
	}
	return filepath.Join(s.EffectivePath(kind), active), true
}

// Cache keys carry the folder so a listing never outlives a change of the
// effective path.
func categoriesKey(kind assetkind.Kind, path string) string {
	return string(kind) + ":categories:" + path
}

func imagesKey(kind assetkind.Kind, dir string) string {
	return string(kind) + ":images:" + dir
}
