// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/discovery"
	"github.com/creative-designer/cdlib/internal/session"
	"github.com/creative-designer/cdlib/internal/watch"

	"github.com/spf13/cobra"
)

// newLibrariesCommand creates the `cdlib libraries` command tree.
func newLibrariesCommand(app *App, flags *rootFlagValues) *cobra.Command {
	libCmd := &cobra.Command{
		Use:     "libraries",
		Aliases: []string{"libs"},
		Short:   "Discover bundled script libraries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	libCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Discover script libraries and list their items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, app, flags, func(s *session.Session, _ *config.Config) error {
				listLibraries(cmd.Context(), app, flags, s)
				return nil
			})
		},
	})

	libCmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Rediscover script libraries whenever the libraries directory changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, app, flags, func(s *session.Session, cfg *config.Config) error {
				return watchLibraries(cmd.Context(), app, flags, s, cfg)
			})
		},
	})

	return libCmd
}

func listLibraries(ctx context.Context, app *App, flags *rootFlagValues, s *session.Session) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Script Libraries"))
	fmt.Fprintf(app.stdout, "%s: %s\n\n", KeyStyle.Render("Libraries directory"), s.LibrariesDir())

	printLibraries(app, s)
	app.Diagnostics.Render(ctx, s.Diagnostics(), flags.verbose, app.stderr)
}

func printLibraries(app *App, s *session.Session) {
	libs := s.Registry().Libraries()
	if len(libs) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(no libraries found)"))
		return
	}

	active, _ := s.ActiveScriptLibrary()
	for _, lib := range libs {
		marker := " "
		if active != nil && lib.Name == active.Name {
			marker = activeMarkerStyle.Render("*")
		}
		fmt.Fprintf(app.stdout, "%s %s\n", marker, KeyStyle.Render(lib.Name))
		if lib.LibraryPath != "" {
			fmt.Fprintf(app.stdout, "    library_path: %s\n", lib.LibraryPath)
		}
		if lib.PanelID != "" {
			fmt.Fprintf(app.stdout, "    panel_id: %s\n", lib.PanelID)
		}
		printItems(app, lib)
	}
}

func printItems(app *App, lib *discovery.ScriptLibrary) {
	if len(lib.Items) == 0 {
		fmt.Fprintf(app.stdout, "    %s\n", SubtitleStyle.Render("(no items)"))
		return
	}
	for _, item := range lib.Items {
		line := item.ModuleName + "." + item.ClassName
		if item.Label != "" {
			line += " " + SubtitleStyle.Render("- "+item.Label)
		}
		fmt.Fprintf(app.stdout, "    %s\n", line)
	}
}

func watchLibraries(ctx context.Context, app *App, flags *rootFlagValues, s *session.Session, cfg *config.Config) error {
	listLibraries(ctx, app, flags, s)

	w, err := watch.New(watch.Config{
		LibrariesDir: s.LibrariesDir(),
		Debounce:     cfg.Watch.Debounce,
		Reloader:     s,
		OnReload: func(changed []string, result discovery.Result, reloadErr error) {
			fmt.Fprintf(app.stdout, "\n%s Detected change(s) in %s. Rediscovered libraries.\n\n",
				KeyStyle.Render("→"), strings.Join(changed, ", "))
			if reloadErr != nil {
				fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("error:"), formatErrorForDisplay(reloadErr, flags.verbose))
				return
			}
			printLibraries(app, s)
			app.Diagnostics.Render(ctx, result.Diagnostics, flags.verbose, app.stderr)
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "\n%s Watching %s for changes (Ctrl+C to stop)...\n", KeyStyle.Render("→"), s.LibrariesDir())
	return w.Run(ctx)
}
