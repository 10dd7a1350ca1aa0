// SPDX-License-Identifier: MPL-2.0

package libpaths

import (
	"maps"
	"os"

	"github.com/creative-designer/cdlib/pkg/assetkind"
)

// Settings maps each asset kind to its user-configured override folder.
// Kinds without an entry have an empty override. The zero value is ready to use.
type Settings struct {
	overrides map[assetkind.Kind]string
}

// NewSettings returns settings with every override empty.
func NewSettings() *Settings {
	return &Settings{}
}

// Override returns the configured override for kind, or "" when unset.
func (s *Settings) Override(kind assetkind.Kind) string {
	if s == nil {
		return ""
	}
	return s.overrides[kind]
}

// SetOverride records path as the override for kind. An empty path clears it.
func (s *Settings) SetOverride(kind assetkind.Kind, path string) {
	if path == "" {
		delete(s.overrides, kind)
		return
	}
	if s.overrides == nil {
		s.overrides = make(map[assetkind.Kind]string, len(assetkind.All()))
	}
	s.overrides[kind] = path
}

// Clone returns an independent copy.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return NewSettings()
	}
	return &Settings{overrides: maps.Clone(s.overrides)}
}

// Equal reports whether both settings hold the same override for every kind.
func (s *Settings) Equal(other *Settings) bool {
	for _, k := range assetkind.All() {
		if s.Override(k) != other.Override(k) {
			return false
		}
	}
	return true
}

// existing returns a copy in which every override that does not exist on
// disk is cleared.
func (s *Settings) existing() *Settings {
	out := NewSettings()
	for _, k := range assetkind.All() {
		if p := s.Override(k); Exists(p) {
			out.SetOverride(k, p)
		}
	}
	return out
}

// Exists reports whether path is non-empty and present on the filesystem.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
