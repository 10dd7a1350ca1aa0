// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	SettingsParseFailedId Id = iota + 1
	SettingsWriteFailedId
	LibraryLoadFailedId
	LibrariesDirNotFoundId
	ConfigLoadFailedId
	UnknownAssetKindId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalog entry: a Markdown help page for a class of failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal-styled Markdown using the given
// glamour style ("dark", "light", "auto" or a style file path).
func (i *Issue) Render(stylePath string) (string, error) {
	var extra strings.Builder
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extra.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			extra.WriteString("- [" + string(link) + "]\n")
		}
		for _, link := range i.extLinks {
			extra.WriteString("- [" + string(link) + "]\n")
		}
	}
	return render(string(i.mdMsg)+extra.String(), stylePath)
}

var (
	render = glamour.Render

	settingsParseFailedIssue = &Issue{
		id: SettingsParseFailedId,
		mdMsg: `
# Library path settings could not be read!

The file that stores your library folders is not valid XML. The built-in
default folders are used until the file is fixed or rewritten.

## Things you can try:
- Show where the file lives:
~~~
$ cdlib config path
~~~
- Delete the file and set your folders again:
~~~
$ cdlib paths set objects /path/to/objects
~~~

## Expected structure:
~~~xml
<LibraryPaths>
  <Objects>/path/to/objects</Objects>
  <Materials></Materials>
  <Collections></Collections>
  <Worlds></Worlds>
  <Scripts></Scripts>
</LibraryPaths>
~~~`,
	}

	settingsWriteFailedIssue = &Issue{
		id: SettingsWriteFailedId,
		mdMsg: `
# Library path settings could not be saved!

Your change was applied for this session but could not be written to disk.

## Things you can try:
- Check that the configuration directory is writable
- Check that the disk is not full
- Run with verbose mode for more details:
~~~
$ cdlib --verbose paths show
~~~`,
	}

	libraryLoadFailedIssue = &Issue{
		id: LibraryLoadFailedId,
		mdMsg: `
# A script library failed to load!

A folder in the libraries directory has a library manifest that could not be
parsed or validated. Other libraries are still available unless strict
discovery is enabled.

## Things you can try:
- List libraries with their diagnostics:
~~~
$ cdlib libraries list --verbose
~~~
- Check the manifest against the expected shape:
~~~cue
library_path: "assets"
panel_id:     "VIEW3D_PT_my_library"
modules: [{
	name: "doors"
	items: [{name: "PLACE_OT_door", show_in_library: true}]
}]
~~~`,
	}

	librariesDirNotFoundIssue = &Issue{
		id: LibrariesDirNotFoundId,
		mdMsg: `
# Libraries directory not found!

No script libraries were discovered because the libraries directory does not exist.

## Things you can try:
- Point the tool at the bundled libraries:
~~~
$ cdlib --libraries-dir /path/to/libraries libraries list
~~~
- Or set ` + "`libraries_dir`" + ` in your config file`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your configuration file contains invalid CUE or values that do not match the schema.

## Things you can try:
- Show the configuration currently in effect:
~~~
$ cdlib config show
~~~
- Recreate a default configuration file:
~~~
$ cdlib config init
~~~`,
	}

	unknownAssetKindIssue = &Issue{
		id: UnknownAssetKindId,
		mdMsg: `
# Unknown asset kind!

Valid kinds are ` + "`script`, `object`, `collection`, `material` and `world`" + `
(plural folder names such as ` + "`objects`" + ` are accepted too).`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A library folder or the settings file could not be accessed.

## Things you can try:
- Check the permissions of the folder:
~~~
$ ls -la /path/to/folder
~~~
- Choose a folder you own with ` + "`cdlib paths set`",
	}

	issues = map[Id]*Issue{
		settingsParseFailedIssue.Id():  settingsParseFailedIssue,
		settingsWriteFailedIssue.Id():  settingsWriteFailedIssue,
		libraryLoadFailedIssue.Id():    libraryLoadFailedIssue,
		librariesDirNotFoundIssue.Id(): librariesDirNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		unknownAssetKindIssue.Id():     unknownAssetKindIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
