// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/discovery"
	"github.com/creative-designer/cdlib/internal/session"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every command handler receives an App and goes
	// through it to load configuration and open a library session.
	App struct {
		Config      ConfigProvider
		Diagnostics DiagnosticRenderer
		settingsDir string
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		Diagnostics DiagnosticRenderer
		// SettingsDir overrides the directory of the library paths file.
		// Empty means the configuration directory.
		SettingsDir string
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// configPathReporter is implemented by providers that know which file
	// their last Load read.
	configPathReporter interface {
		LastPath() string
	}

	// DiagnosticRenderer renders structured discovery diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []discovery.Diagnostic, verbose bool, w io.Writer)
	}

	// rootFlagValues holds the persistent flags shared by every command.
	rootFlagValues struct {
		verbose      bool
		configPath   string
		librariesDir string
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}

	return &App{
		Config:      deps.Config,
		Diagnostics: deps.Diagnostics,
		settingsDir: deps.SettingsDir,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// loadConfig loads configuration honoring --config and --libraries-dir.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}
	if flags.librariesDir != "" {
		cfg.LibrariesDir = flags.librariesDir
	}
	return cfg, nil
}

// openSession loads configuration and opens a library session. A settings
// file that could not be read is reported as a warning; the session then
// runs on empty overrides.
func (a *App) openSession(ctx context.Context, flags *rootFlagValues) (*session.Session, *config.Config, error) {
	cfg, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, nil, err
	}

	var opts []session.Option
	if a.settingsDir != "" {
		opts = append(opts, session.WithSettingsDir(a.settingsDir))
	}

	s, err := session.Open(ctx, cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	if settingsErr := s.SettingsError(); settingsErr != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(settingsErr, flags.verbose))
	}
	return s, cfg, nil
}

// setupLogging installs a charmbracelet/log handler on the process stderr as
// the slog default.
func setupLogging(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cdlib",
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
}

// Render writes diagnostics with lipgloss styling. Info diagnostics are
// shown only in verbose mode.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []discovery.Diagnostic, verbose bool, w io.Writer) {
	for _, diag := range diags {
		var prefix string
		switch diag.Severity {
		case discovery.SeverityError:
			prefix = ErrorStyle.Render("error")
		case discovery.SeverityWarning:
			prefix = WarningStyle.Render("warning")
		default:
			if !verbose {
				continue
			}
			prefix = SubtitleStyle.Render("info")
		}

		if diag.Path != "" {
			_, _ = fmt.Fprintf(w, "%s: %s (%s)\n", prefix, diag.Message, diag.Path)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, diag.Message)
	}
}
