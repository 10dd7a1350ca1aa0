// SPDX-License-Identifier: MPL-2.0

// Package category lists the category sub-folders of an asset folder and
// remembers which one is active for every asset kind.
package category

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/creative-designer/cdlib/pkg/assetkind"
)

// None is returned when there is no category to select.
const None = ""

// Selections stores the last selected category per asset kind.
// It is safe for concurrent use.
type Selections struct {
	mu     sync.RWMutex
	byKind map[assetkind.Kind]string
}

// ActiveCategory returns previous when it is one of subfolders, else the
// first subfolder, else None.
func ActiveCategory(previous string, subfolders []string) string {
	if previous != None && slices.Contains(subfolders, previous) {
		return previous
	}
	if len(subfolders) > 0 {
		return subfolders[0]
	}
	return None
}

// ListSubfolders returns the names of the immediate sub-directories of path,
// sorted by name. A missing or unreadable path yields an empty list.
func ListSubfolders(path string) []string {
	if path == "" {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("cannot list categories", "path", path, "error", err)
		}
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(path, e.Name())); err == nil && info.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	return names
}

// NewSelections returns an empty selection store.
func NewSelections() *Selections {
	return &Selections{byKind: make(map[assetkind.Kind]string)}
}

// Get returns the stored selection for kind, or None.
func (s *Selections) Get(kind assetkind.Kind) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byKind[kind]
}

// Set stores name as the selection for kind. None clears it.
func (s *Selections) Set(kind assetkind.Kind, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == None {
		delete(s.byKind, kind)
		return
	}
	s.byKind[kind] = name
}

// Active resolves the active category of kind among subfolders.
func (s *Selections) Active(kind assetkind.Kind, subfolders []string) string {
	return ActiveCategory(s.Get(kind), subfolders)
}
