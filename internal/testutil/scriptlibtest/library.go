// SPDX-License-Identifier: MPL-2.0

package scriptlibtest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creative-designer/cdlib/internal/testutil"
	"github.com/creative-designer/cdlib/pkg/scriptlib"
)

type (
	// Option configures a fixture manifest.
	Option func(*scriptlib.Manifest)

	// ItemOption declares one item of a fixture module.
	ItemOption func() scriptlib.ItemSpec
)

// Write creates root/name with a library.cue built from opts and returns the
// library directory.
func Write(t testing.TB, root, name string, opts ...Option) string {
	t.Helper()
	m := &scriptlib.Manifest{}
	for _, opt := range opts {
		opt(m)
	}
	dir := filepath.Join(root, name)
	testutil.MustWriteFile(t, filepath.Join(dir, scriptlib.CUEManifestName), RenderCUE(m))
	return dir
}

// WriteRaw creates root/name/file with the given content and returns the
// library directory. Use it for malformed or YAML manifests.
func WriteRaw(t testing.TB, root, name, file, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	testutil.MustWriteFile(t, filepath.Join(dir, file), content)
	return dir
}

// WithLibraryPath sets library_path.
func WithLibraryPath(p string) Option {
	return func(m *scriptlib.Manifest) { m.LibraryPath = p }
}

// WithPanelID sets panel_id.
func WithPanelID(id string) Option {
	return func(m *scriptlib.Manifest) { m.PanelID = id }
}

// WithModule appends a module with the given items.
func WithModule(name string, items ...ItemOption) Option {
	return func(m *scriptlib.Manifest) {
		mod := scriptlib.Module{Name: name}
		for _, it := range items {
			mod.Items = append(mod.Items, it())
		}
		m.Modules = append(m.Modules, mod)
	}
}

// Shown declares an item with show_in_library set to true.
func Shown(name string) ItemOption {
	return func() scriptlib.ItemSpec { return scriptlib.ItemSpec{Name: name, ShowInLibrary: true} }
}

// Hidden declares an item with show_in_library set to false.
func Hidden(name string) ItemOption {
	return func() scriptlib.ItemSpec { return scriptlib.ItemSpec{Name: name} }
}

// RenderCUE renders m as library.cue content.
func RenderCUE(m *scriptlib.Manifest) string {
	var sb strings.Builder
	if m.LibraryPath != "" {
		fmt.Fprintf(&sb, "library_path: %q\n", m.LibraryPath)
	}
	if m.PanelID != "" {
		fmt.Fprintf(&sb, "panel_id: %q\n", m.PanelID)
	}
	sb.WriteString("modules: [\n")
	for _, mod := range m.Modules {
		fmt.Fprintf(&sb, "\t{\n\t\tname: %q\n\t\titems: [\n", mod.Name)
		for _, it := range mod.Items {
			fmt.Fprintf(&sb, "\t\t\t{name: %q, show_in_library: %v},\n", it.Name, it.ShowInLibrary)
		}
		sb.WriteString("\t\t]\n\t},\n")
	}
	sb.WriteString("]\n")
	return sb.String()
}
