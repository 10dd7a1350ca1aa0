// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/internal/libpaths"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `cdlib config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cdlib configuration",
		Long: `Manage cdlib configuration.

Configuration is stored in:
  - Linux: ~/.config/creative_designer/config.cue
  - macOS: ~/Library/Application Support/creative_designer/config.cue
  - Windows: %APPDATA%\creative_designer\config.cue`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, flags *rootFlagValues) error {
	cfg, err := app.loadConfig(ctx, flags)
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(string(config.ColorSchemeAuto))
		fmt.Fprint(app.stderr, rendered)
		return err
	}

	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	cfgPath := ""
	if reporter, ok := app.Config.(configPathReporter); ok {
		cfgPath = reporter.LastPath()
	}
	if cfgPath != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	root, rootErr := cfg.ResolveLibraryRoot()
	if rootErr != nil {
		root = "(" + rootErr.Error() + ")"
	}
	libsDir, libsErr := cfg.ResolveLibrariesDir()
	if libsErr != nil {
		libsDir = "(" + libsErr.Error() + ")"
	}

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("library_root"), valueStyle.Render(root))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("libraries_dir"), valueStyle.Render(libsDir))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("discovery"))
	fmt.Fprintf(app.stdout, "  strict: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Discovery.Strict)))
	fmt.Fprintf(app.stdout, "  sort_by_name: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Discovery.SortByName)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("preview"))
	fmt.Fprintf(app.stdout, "  image_patterns: %s\n", valueStyle.Render(strings.Join(cfg.Preview.ImagePatterns, ", ")))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(app.stdout, "  debounce: %s\n", valueStyle.Render(cfg.Watch.Debounce.String()))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	fmt.Fprintf(app.stdout, "Library paths file: %s\n", settingsFilePath(app, cfgDir))
	return nil
}

func settingsFilePath(app *App, cfgDir string) string {
	dir := app.settingsDir
	if dir == "" {
		dir = cfgDir
	}
	return libpaths.NewStore(dir).Path
}
