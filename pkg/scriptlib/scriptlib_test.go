// SPDX-License-Identifier: MPL-2.0

package scriptlib

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/creative-designer/cdlib/internal/testutil"
)

const doorsManifest = `
library_path: "scripts"
panel_id:     "CD_PT_doors"
modules: [
	{
		name: "doors"
		items: [
			{name: "place_door", label: "Place Door", show_in_library: true},
			{name: "ops", show_in_library: true},
			{name: "door_helpers", show_in_library: false},
			{name: "draft_door"},
		]
	},
	{
		name: "__internal"
		items: [{name: "rebuild_cache", show_in_library: true}]
	},
	{
		name: "_shared"
		items: [{name: "align_frame", show_in_library: true}]
	},
	{
		name: "windows"
		items: [{name: "place_window", show_in_library: true}]
	},
]
`

func writeLibrary(t *testing.T, root, name, file, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	testutil.MustWriteFile(t, filepath.Join(dir, file), content)
	return dir
}

func TestIsLibrary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cueLib := writeLibrary(t, root, "doors", CUEManifestName, doorsManifest)
	yamlLib := writeLibrary(t, root, "stairs", YAMLManifestName, "panel_id: CD_PT_stairs\n")
	plain := testutil.MustDirs(t, root, "textures")
	testutil.MustMkdirAll(t, filepath.Join(root, "weird", CUEManifestName), 0o755)

	tests := []struct {
		name string
		dir  string
		want bool
	}{
		{"cue manifest", cueLib, true},
		{"yaml manifest", yamlLib, true},
		{"no manifest", filepath.Join(plain, "textures"), false},
		{"manifest is a directory", filepath.Join(root, "weird"), false},
		{"missing dir", filepath.Join(root, "nope"), false},
		{"manifest file itself", filepath.Join(cueLib, CUEManifestName), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsLibrary(tt.dir); got != tt.want {
				t.Errorf("IsLibrary(%q) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestLoad_CUE(t *testing.T) {
	t.Parallel()

	dir := writeLibrary(t, t.TempDir(), "doors", CUEManifestName, doorsManifest)

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lib.Name != "doors" {
		t.Errorf("Name = %q, want doors", lib.Name)
	}
	if lib.PanelID != "CD_PT_doors" {
		t.Errorf("PanelID = %q", lib.PanelID)
	}
	wantPath, _ := filepath.Abs(filepath.Join(dir, "scripts"))
	if lib.LibraryPath != wantPath {
		t.Errorf("LibraryPath = %q, want %q", lib.LibraryPath, wantPath)
	}
	if filepath.Base(lib.ManifestPath) != CUEManifestName {
		t.Errorf("ManifestPath = %q", lib.ManifestPath)
	}
}

func TestLibrary_Items(t *testing.T) {
	t.Parallel()

	dir := writeLibrary(t, t.TempDir(), "doors", CUEManifestName, doorsManifest)
	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	items := lib.Items()
	var got []string
	for _, it := range items {
		if it.PackageName != "doors" {
			t.Errorf("PackageName = %q, want doors", it.PackageName)
		}
		got = append(got, it.ModuleName+"."+it.ClassName)
	}
	want := []string{"doors.place_door", "_shared.align_frame", "windows.place_window"}
	if !slices.Equal(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
	if items[0].Label != "Place Door" {
		t.Errorf("explicit label = %q, want Place Door", items[0].Label)
	}
	if items[2].Label != "place_window" {
		t.Errorf("default label = %q, want item name", items[1].Label)
	}
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	abs := t.TempDir()
	dir := writeLibrary(t, t.TempDir(), "stairs", YAMLManifestName, `
library_path: `+abs+`
modules:
  - name: stairs
    items:
      - name: place_stairs
        show_in_library: true
      - name: stairs_props
`)

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lib.LibraryPath != filepath.Clean(abs) {
		t.Errorf("absolute LibraryPath = %q, want %q", lib.LibraryPath, abs)
	}
	items := lib.Items()
	if len(items) != 1 || items[0].ClassName != "place_stairs" {
		t.Errorf("Items() = %+v, want only place_stairs", items)
	}
}

func TestLoad_CUEPreferredOverYAML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := writeLibrary(t, root, "both", CUEManifestName, `panel_id: "FROM_CUE"`)
	writeLibrary(t, root, "both", YAMLManifestName, "panel_id: FROM_YAML\n")

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lib.PanelID != "FROM_CUE" {
		t.Errorf("PanelID = %q, want FROM_CUE", lib.PanelID)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantSub string
	}{
		{"cue syntax", CUEManifestName, `modules: [`, CUEManifestName},
		{"unknown field", CUEManifestName, `version: "1.0"`, "version"},
		{"bad flag type", CUEManifestName, `modules: [{name: "m", items: [{name: "x", show_in_library: "yes"}]}]`, "show_in_library"},
		{"bad module name", CUEManifestName, `modules: [{name: "my module"}]`, "name"},
		{"yaml syntax", YAMLManifestName, "modules: [\n", YAMLManifestName},
		{"yaml schema", YAMLManifestName, "panel_id: 42\n", "panel_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := writeLibrary(t, t.TempDir(), "broken", tt.file, tt.content)

			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoad_NotLibrary(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotLibrary) {
		t.Errorf("Load() error = %v, want ErrNotLibrary", err)
	}
}

func TestLoad_EmptyManifest(t *testing.T) {
	t.Parallel()

	dir := writeLibrary(t, t.TempDir(), "empty", YAMLManifestName, "")
	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if lib.LibraryPath != "" || len(lib.Items()) != 0 {
		t.Errorf("empty manifest should yield no path and no items, got %+v", lib)
	}
}

func TestResolveLibraryPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"relative", "scripts", filepath.Join(dir, "scripts"), false},
		{"absolute", dir, dir, false},
		{"null byte", "a\x00b", "", true},
		{"too long", strings.Repeat("a", MaxPathLength+1), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveLibraryPath(dir, tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLibraryPath) {
					t.Errorf("resolveLibraryPath(%q) error = %v, want ErrInvalidLibraryPath", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveLibraryPath(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("resolveLibraryPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
