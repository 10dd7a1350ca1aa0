// SPDX-License-Identifier: MPL-2.0

package scriptlib

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creative-designer/cdlib/pkg/cueutil"

	"gopkg.in/yaml.v3"
)

const (
	// CUEManifestName is the preferred manifest file name.
	CUEManifestName = "library.cue"
	// YAMLManifestName is the alternative manifest file name.
	YAMLManifestName = "library.yaml"

	// PrivatePrefix marks modules that are never listed. A single leading
	// underscore is an ordinary module name.
	PrivatePrefix = "__"
	// OpsItemName is reserved for the operator binding and never listed.
	OpsItemName = "ops"

	// MaxPathLength bounds library_path.
	MaxPathLength = 4096
)

var (
	//go:embed library_schema.cue
	librarySchema string

	// ErrNotLibrary is returned by Load for a directory without a manifest.
	ErrNotLibrary = errors.New("not a script library")
	// ErrInvalidLibraryPath is returned when library_path cannot be used.
	ErrInvalidLibraryPath = errors.New("invalid library path")
)

type (
	// Manifest is the decoded content of a library manifest.
	Manifest struct {
		LibraryPath string   `json:"library_path,omitempty"`
		PanelID     string   `json:"panel_id,omitempty"`
		Modules     []Module `json:"modules,omitempty"`
	}

	// Module groups the items one script module exposes.
	Module struct {
		Name  string     `json:"name"`
		Items []ItemSpec `json:"items,omitempty"`
	}

	// ItemSpec declares one operation of a module.
	ItemSpec struct {
		Name          string `json:"name"`
		Label         string `json:"label,omitempty"`
		Description   string `json:"description,omitempty"`
		ShowInLibrary bool   `json:"show_in_library,omitempty"`
	}

	// Library is a loaded script library.
	Library struct {
		// Name is the library directory's base name.
		Name string
		// Dir is the library directory.
		Dir string
		// ManifestPath is the manifest file that was read.
		ManifestPath string
		// LibraryPath is library_path resolved to an absolute path, or "".
		LibraryPath string
		// PanelID is the declared panel identifier, or "".
		PanelID string
		// Manifest is the decoded manifest.
		Manifest *Manifest
	}

	// Item is one operation a library exposes to the library panel.
	Item struct {
		PackageName string
		ModuleName  string
		ClassName   string
		Label       string
		Description string
	}
)

// ManifestPath returns the manifest file of dir and whether one exists.
// library.cue wins when both are present.
func ManifestPath(dir string) (string, bool) {
	for _, name := range []string{CUEManifestName, YAMLManifestName} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// IsLibrary reports whether dir is a directory holding a library manifest.
func IsLibrary(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, ok := ManifestPath(dir)
	return ok
}

// Load reads and validates the library in dir.
func Load(dir string) (*Library, error) {
	manifestPath, ok := ManifestPath(dir)
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotLibrary)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read library manifest at %s: %w", manifestPath, err)
	}

	m, err := ParseManifestBytes(data, manifestPath)
	if err != nil {
		return nil, err
	}

	libPath, err := resolveLibraryPath(dir, m.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("%s: library_path: %w", manifestPath, err)
	}

	return &Library{
		Name:         filepath.Base(filepath.Clean(dir)),
		Dir:          dir,
		ManifestPath: manifestPath,
		LibraryPath:  libPath,
		PanelID:      m.PanelID,
		Manifest:     m,
	}, nil
}

// ParseManifestBytes decodes manifest content. The format follows the file
// extension of path: ".yaml" and ".yml" are YAML, anything else is CUE.
func ParseManifestBytes(data []byte, path string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data, path)
	default:
		result, err := cueutil.ParseAndDecodeString[Manifest](
			librarySchema,
			data,
			"#Library",
			cueutil.WithFilename(path),
		)
		if err != nil {
			return nil, err
		}
		return result.Value, nil
	}
}

func parseYAML(data []byte, path string) (*Manifest, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := cueutil.DecodeValue[Manifest]([]byte(librarySchema), doc, "#Library", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func resolveLibraryPath(dir, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if len(p) > MaxPathLength {
		return "", fmt.Errorf("%w: too long (%d chars, max %d)", ErrInvalidLibraryPath, len(p), MaxPathLength)
	}
	if strings.ContainsRune(p, '\x00') {
		return "", fmt.Errorf("%w: contains null byte", ErrInvalidLibraryPath)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	abs, err := filepath.Abs(filepath.Join(dir, p))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidLibraryPath, err)
	}
	return abs, nil
}

// Items returns the operations the library exposes, in manifest order.
// Modules whose name starts with PrivatePrefix, items named OpsItemName and
// items without show_in_library are left out.
func (l *Library) Items() []Item {
	if l.Manifest == nil {
		return nil
	}
	var items []Item
	for _, mod := range l.Manifest.Modules {
		if strings.HasPrefix(mod.Name, PrivatePrefix) {
			continue
		}
		for _, spec := range mod.Items {
			if spec.Name == OpsItemName || !spec.ShowInLibrary {
				continue
			}
			label := spec.Label
			if label == "" {
				label = spec.Name
			}
			items = append(items, Item{
				PackageName: l.Name,
				ModuleName:  mod.Name,
				ClassName:   spec.Name,
				Label:       label,
				Description: spec.Description,
			})
		}
	}
	return items
}
