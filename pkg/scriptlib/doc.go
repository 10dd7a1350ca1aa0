// SPDX-License-Identifier: MPL-2.0

// Package scriptlib defines the contract a bundled script library fulfills
// to be discovered: a directory holding a declarative manifest.
//
// The manifest is library.cue (preferred) or library.yaml. Both are validated
// against the embedded #Library CUE schema. A directory without either file
// is not a library.
//
//	library_path: "scripts"
//	panel_id:     "CD_PT_doors"
//	modules: [{
//		name: "doors"
//		items: [{name: "place_door", show_in_library: true}]
//	}]
package scriptlib
