// SPDX-License-Identifier: MPL-2.0

// Package assetkind defines the closed set of asset categories managed by the
// library: scripts, objects, collections, materials and worlds.
//
// Each kind carries two pieces of static naming: the sub-folder used for its
// built-in default location and the element tag used in the settings file.
// This package is a leaf dependency and imports only the standard library.
package assetkind

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Script holds script library assets.
	Script Kind = "script"
	// Object holds reusable object assets.
	Object Kind = "object"
	// Collection holds reusable collection assets.
	Collection Kind = "collection"
	// Material holds reusable material assets.
	Material Kind = "material"
	// World holds reusable world assets.
	World Kind = "world"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid asset kind")

type (
	// Kind identifies one of the five managed asset categories.
	Kind string

	// InvalidKindError is returned when a Kind value is not one of the known kinds.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}
)

// All returns every kind in library tab order.
func All() []Kind {
	return []Kind{Script, Object, Collection, Material, World}
}

// SettingsOrder returns every kind in the order its element is written to the
// settings file.
func SettingsOrder() []Kind {
	return []Kind{Object, Material, Collection, World, Script}
}

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// IsValid returns whether the Kind is one of the known asset kinds.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case Script, Object, Collection, Material, World:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// Folder returns the conventional sub-folder name of the kind's default location.
func (k Kind) Folder() string {
	switch k {
	case Script:
		return "scripts"
	case Object:
		return "objects"
	case Collection:
		return "collections"
	case Material:
		return "materials"
	case World:
		return "worlds"
	default:
		return ""
	}
}

// XMLTag returns the element name used for the kind in the settings file.
func (k Kind) XMLTag() string {
	switch k {
	case Script:
		return "Scripts"
	case Object:
		return "Objects"
	case Collection:
		return "Collections"
	case Material:
		return "Materials"
	case World:
		return "Worlds"
	default:
		return ""
	}
}

// TabName returns the upper-case tab identifier used by the library panel
// (e.g. "OBJECT").
func (k Kind) TabName() string {
	return strings.ToUpper(string(k))
}

// FromXMLTag maps a settings element tag back to its kind.
// The second return value is false for unrecognized tags.
func FromXMLTag(tag string) (Kind, bool) {
	for _, k := range All() {
		if k.XMLTag() == tag {
			return k, true
		}
	}
	return "", false
}

// Parse converts user input into a Kind. It accepts the kind name, its tab
// identifier and its plural folder name in any letter case
// ("object", "OBJECT", "objects", "Objects").
func Parse(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, k := range All() {
		if norm == string(k) || norm == k.Folder() {
			return k, nil
		}
	}
	return "", &InvalidKindError{Value: Kind(s)}
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid asset kind %q (valid: script, object, collection, material, world)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
