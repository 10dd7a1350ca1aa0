// SPDX-License-Identifier: MPL-2.0

package libpaths

import (
	"log/slog"
	"path/filepath"

	"github.com/creative-designer/cdlib/pkg/assetkind"
)

const (
	// SourceOverride means the user's override folder is in effect.
	SourceOverride Source = "override"
	// SourceLibrary means the active script library's folder is in effect.
	SourceLibrary Source = "library"
	// SourceDefault means the built-in default folder is in effect.
	SourceDefault Source = "default"
)

type (
	// Source names where an effective path came from.
	Source string

	// Resolver computes the effective folder of each asset kind.
	//
	// Resolution is a pure function of the settings, the filesystem and the
	// active script library; it never creates folders and never fails.
	Resolver struct {
		// Root is the directory the default folders live under.
		Root string
		// Settings holds the user overrides. Nil means no overrides.
		Settings *Settings
		// ActiveScriptPath returns the folder declared by the active script
		// library, or "" when there is none. Nil means no script libraries.
		ActiveScriptPath func() string
	}
)

// String returns the string representation of the Source.
func (s Source) String() string { return string(s) }

// DefaultFolder returns the built-in folder of kind under root.
func DefaultFolder(root string, kind assetkind.Kind) string {
	return filepath.Join(root, kind.Folder())
}

// EffectivePath returns the folder that is authoritative for kind.
func (r *Resolver) EffectivePath(kind assetkind.Kind) string {
	p, _ := r.resolve(kind)
	return p
}

// Source reports where EffectivePath(kind) comes from.
func (r *Resolver) Source(kind assetkind.Kind) Source {
	_, src := r.resolve(kind)
	return src
}

func (r *Resolver) resolve(kind assetkind.Kind) (string, Source) {
	override := r.Settings.Override(kind)
	if Exists(override) {
		return override, SourceOverride
	}
	if override != "" {
		slog.Debug("override folder missing, using fallback", "kind", kind, "path", override)
	}

	if kind == assetkind.Script && r.ActiveScriptPath != nil {
		if p := r.ActiveScriptPath(); p != "" {
			return p, SourceLibrary
		}
	}

	return DefaultFolder(r.Root, kind), SourceDefault
}
