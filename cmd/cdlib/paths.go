// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/libpaths"
	"github.com/creative-designer/cdlib/internal/session"
	"github.com/creative-designer/cdlib/pkg/assetkind"

	"github.com/spf13/cobra"
)

// newPathsCommand creates the `cdlib paths` command tree.
func newPathsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	pathsCmd := &cobra.Command{
		Use:   "paths",
		Short: "Show or override asset library folders",
		Long: `Show or override the folder used for each asset kind.

An override wins when its folder exists. Otherwise scripts use the active
script library's folder, and every other kind uses its default folder under
the library root.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var scriptLibrary string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective folder of every asset kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, app, flags, func(s *session.Session, _ *config.Config) error {
				if scriptLibrary != "" {
					if err := s.SelectScriptLibrary(scriptLibrary); err != nil {
						return err
					}
				}
				showPaths(app, s)
				return nil
			})
		},
	}
	showCmd.Flags().StringVar(&scriptLibrary, "script-library", "", "script library whose folder the script kind resolves to")
	pathsCmd.AddCommand(showCmd)

	pathsCmd.AddCommand(&cobra.Command{
		Use:               "set <kind> <path>",
		Short:             "Override the folder of an asset kind",
		Args:              kindArgs(2),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := parseKind(args[0])
			return runWithSession(cmd, app, flags, func(s *session.Session, _ *config.Config) error {
				if err := s.SetOverride(kind, args[1]); err != nil {
					return err
				}
				override := s.Settings().Override(kind)
				if !libpaths.Exists(override) {
					fmt.Fprintf(app.stderr, "%s %s does not exist; %s keeps using %s\n",
						WarningStyle.Render("!"), override, kind, s.EffectivePath(kind))
				}
				fmt.Fprintf(app.stdout, "%s %s folder set to %s\n", SuccessStyle.Render("✓"), KeyStyle.Render(kind.String()), override)
				return nil
			})
		},
	})

	pathsCmd.AddCommand(&cobra.Command{
		Use:               "unset <kind>",
		Short:             "Remove the folder override of an asset kind",
		Args:              kindArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := parseKind(args[0])
			return runWithSession(cmd, app, flags, func(s *session.Session, _ *config.Config) error {
				if err := s.SetOverride(kind, ""); err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "%s %s folder reset to %s\n", SuccessStyle.Render("✓"), KeyStyle.Render(kind.String()), s.EffectivePath(kind))
				return nil
			})
		},
	})

	return pathsCmd
}

func showPaths(app *App, s *session.Session) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Library Folders"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", KeyStyle.Render("Library root"), s.LibraryRoot())
	fmt.Fprintf(app.stdout, "%s: %s\n", KeyStyle.Render("Settings file"), s.SettingsPath())
	fmt.Fprintln(app.stdout)

	for _, kind := range assetkind.All() {
		source := s.Source(kind)
		fmt.Fprintf(app.stdout, "%s %s %s\n",
			KeyStyle.Render(fmt.Sprintf("%-10s", kind)),
			SuccessStyle.Render(s.EffectivePath(kind)),
			SubtitleStyle.Render("("+sourceLabel(s, kind, source)+")"))
	}
}

func sourceLabel(s *session.Session, kind assetkind.Kind, source libpaths.Source) string {
	if source == libpaths.SourceLibrary && kind == assetkind.Script {
		if lib, ok := s.ActiveScriptLibrary(); ok {
			return "library " + lib.Name
		}
	}
	return source.String()
}
