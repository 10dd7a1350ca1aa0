// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("new registry Len() = %d, want 0", r.Len())
	}
	if _, ok := r.First(); ok {
		t.Error("First() on empty registry should report false")
	}

	libs := []*ScriptLibrary{{Name: "doors"}, {Name: "stairs"}}
	r.Replace(libs)
	libs[0] = &ScriptLibrary{Name: "mutated"}

	if got := r.Names(); !slices.Equal(got, []string{"doors", "stairs"}) {
		t.Errorf("Names() = %v, want [doors stairs]", got)
	}
	if first, ok := r.First(); !ok || first.Name != "doors" {
		t.Errorf("First() = %v, %v; want doors", first, ok)
	}
	if lib, ok := r.Lookup("stairs"); !ok || lib.Name != "stairs" {
		t.Errorf("Lookup(stairs) = %v, %v", lib, ok)
	}
	if _, ok := r.Lookup("windows"); ok {
		t.Error("Lookup(windows) should report false")
	}

	r.Clear()
	if r.Len() != 0 || len(r.Libraries()) != 0 {
		t.Error("Clear() should empty the registry")
	}
}
