// SPDX-License-Identifier: MPL-2.0

package scriptlib

import (
	"reflect"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests keep the Go structs' JSON tags aligned with the CUE schema.

func cueFields(t *testing.T, def string) map[string]bool {
	t.Helper()

	schema := cuecontext.New().CompileString(librarySchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}
	val := schema.LookupPath(cue.ParsePath(def))
	if val.Err() != nil {
		t.Fatalf("failed to lookup %s: %v", def, val.Err())
	}

	iter, err := val.Fields(cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate %s: %v", def, err)
	}
	fields := make(map[string]bool)
	for iter.Next() {
		fields[strings.TrimSuffix(iter.Selector().String(), "?")] = iter.IsOptional()
	}
	return fields
}

func goFields(typ reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := range typ.NumField() {
		f := typ.Field(i)
		tag := f.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fields[name] = strings.Contains(opts, "omitempty")
	}
	return fields
}

func TestSchemaSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		def string
		typ reflect.Type
	}{
		{"#Library", reflect.TypeFor[Manifest]()},
		{"#Module", reflect.TypeFor[Module]()},
		{"#Item", reflect.TypeFor[ItemSpec]()},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			t.Parallel()
			cf := cueFields(t, tt.def)
			gf := goFields(tt.typ)

			for name, optional := range cf {
				omitempty, ok := gf[name]
				if !ok {
					t.Errorf("CUE field %q has no Go counterpart", name)
					continue
				}
				if optional != omitempty {
					t.Errorf("field %q: CUE optional=%v, Go omitempty=%v", name, optional, omitempty)
				}
			}
			for name := range gf {
				if _, ok := cf[name]; !ok {
					t.Errorf("Go field %q is missing from the CUE schema", name)
				}
			}
		})
	}
}
