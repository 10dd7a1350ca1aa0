// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the cdlib command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "cdlib",
		Short: "Manage creative asset library folders",
		Long: TitleStyle.Render("cdlib") + SubtitleStyle.Render(" - Manage creative asset library folders") + `

cdlib resolves the folder used for each asset kind (scripts, objects,
collections, materials, worlds), stores folder overrides in an XML
settings file, and discovers bundled script libraries.

` + SubtitleStyle.Render("Examples:") + `
  cdlib paths show                      Show the folder of every asset kind
  cdlib paths set objects ~/assets/obj  Override the objects folder
  cdlib libraries list                  Discover script libraries
  cdlib categories materials            List material categories
  cdlib config show                     Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initRootConfig(cmd.Context(), app, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/config.cue)")
	rootCmd.PersistentFlags().StringVar(&flags.librariesDir, "libraries-dir", "", "directory holding bundled script libraries")

	rootCmd.AddCommand(newPathsCommand(app, flags))
	rootCmd.AddCommand(newLibrariesCommand(app, flags))
	rootCmd.AddCommand(newCategoriesCommand(app, flags))
	rootCmd.AddCommand(newPreviewsCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig applies ui.verbose from the configuration when --verbose
// was not given and installs the logger. A configuration that fails to load
// is surfaced as a warning here; the command itself reports the error.
func initRootConfig(ctx context.Context, app *App, flags *rootFlagValues) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
	}
	if cfg != nil && !flags.verbose {
		flags.verbose = cfg.UI.Verbose
	}
	setupLogging(flags.verbose)
	return nil
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; verbose mode adds the cause chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderIssueHelp writes the catalog page linked to err, if any, using the
// glamour style matching the configured color scheme.
func renderIssueHelp(w io.Writer, err error, scheme config.ColorScheme) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID == 0 {
		return
	}
	entry := issue.Get(ae.IssueID)
	if entry == nil {
		return
	}
	style := string(scheme)
	if style == "" {
		style = string(config.ColorSchemeAuto)
	}
	rendered, renderErr := entry.Render(style)
	if renderErr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
