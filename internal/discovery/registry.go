// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"sync"

	"github.com/creative-designer/cdlib/pkg/scriptlib"
)

type (
	// ScriptLibrary is one discovered library and the items it exposes.
	ScriptLibrary struct {
		// Name is the library directory name.
		Name string
		// Dir is the library directory.
		Dir string
		// LibraryPath is the folder the library declares, or "".
		LibraryPath string
		// PanelID is the panel identifier the library declares, or "".
		PanelID string
		// Items are the operations shown in the library panel.
		Items []scriptlib.Item
	}

	// Registry holds the libraries found by the last discovery pass, in
	// discovery order. It is safe for concurrent use.
	Registry struct {
		mu   sync.RWMutex
		libs []*ScriptLibrary
	}
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func newScriptLibrary(lib *scriptlib.Library) *ScriptLibrary {
	return &ScriptLibrary{
		Name:        lib.Name,
		Dir:         lib.Dir,
		LibraryPath: lib.LibraryPath,
		PanelID:     lib.PanelID,
		Items:       lib.Items(),
	}
}

// Replace swaps the registry content for libs.
func (r *Registry) Replace(libs []*ScriptLibrary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.libs = slices.Clone(libs)
}

// Clear removes every library.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.libs = nil
}

// Libraries returns the libraries in discovery order.
func (r *Registry) Libraries() []*ScriptLibrary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.libs)
}

// Lookup returns the library called name.
func (r *Registry) Lookup(name string) (*ScriptLibrary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, lib := range r.libs {
		if lib.Name == name {
			return lib, true
		}
	}
	return nil, false
}

// First returns the first library, if any.
func (r *Registry) First() (*ScriptLibrary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.libs) == 0 {
		return nil, false
	}
	return r.libs[0], true
}

// Len returns the number of libraries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.libs)
}

// Names returns the library names in discovery order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.libs))
	for _, lib := range r.libs {
		names = append(names, lib.Name)
	}
	return names
}
