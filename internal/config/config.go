// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/pkg/cueutil"
	"github.com/creative-designer/cdlib/pkg/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name. It names the configuration directory.
	AppName = "creative_designer"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LibrariesDirName is the folder next to the executable that holds bundled
	// script libraries.
	LibrariesDirName = "libraries"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the configuration root using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string

	switch runtime.GOOS {
	case platform.Windows:
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// ResolveLibraryRoot returns the configured library root, or the
// configuration directory when none is set.
func (c *Config) ResolveLibraryRoot() (string, error) {
	if c.LibraryRoot != "" {
		return c.LibraryRoot, nil
	}
	return ConfigDir()
}

// ResolveLibrariesDir returns the configured libraries directory, or the
// "libraries" folder next to the executable when none is set.
func (c *Config) ResolveLibrariesDir() (string, error) {
	if c.LibrariesDir != "" {
		return c.LibrariesDir, nil
	}
	exeDir, err := platform.ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(exeDir, LibrariesDirName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It also returns the path of the file that was read,
// or "" when only defaults apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("library_root", defaults.LibraryRoot)
	v.SetDefault("libraries_dir", defaults.LibrariesDir)
	v.SetDefault("discovery.strict", defaults.Discovery.Strict)
	v.SetDefault("discovery.sort_by_name", defaults.Discovery.SortByName)
	v.SetDefault("preview.image_patterns", defaults.Preview.ImagePatterns)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path passed to --config").
				WithSuggestion("Run 'cdlib config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", loadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", loadError(cuePath, err)
			}
			resolvedPath = cuePath
		}
		// No config file: defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Run 'cdlib config show' to see the effective values").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// cueutil.ParseAndDecode is not used here: the config is decoded into a map
// so Viper keeps its defaults for every key the file leaves out.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// ConfigFilePath returns the path of config.cue inside the configuration root.
//
//nolint:revive // mirrors ConfigDir
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig creates a default config file if it doesn't exist.
// It reports whether a new file was written.
func CreateDefaultConfig() (bool, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return false, nil
	}

	if err := writeConfig(cfgPath, DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the configuration to config.cue in the configuration root.
func Save(cfg *Config) error {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return err
	}
	return writeConfig(cfgPath, cfg)
}

func writeConfig(cfgPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// creative_designer library configuration\n\n")

	if cfg.LibraryRoot != "" {
		fmt.Fprintf(&sb, "library_root: %q\n", cfg.LibraryRoot)
	}
	if cfg.LibrariesDir != "" {
		fmt.Fprintf(&sb, "libraries_dir: %q\n", cfg.LibrariesDir)
	}

	sb.WriteString("\ndiscovery: {\n")
	fmt.Fprintf(&sb, "\tstrict: %v\n", cfg.Discovery.Strict)
	fmt.Fprintf(&sb, "\tsort_by_name: %v\n", cfg.Discovery.SortByName)
	sb.WriteString("}\n")

	sb.WriteString("\npreview: {\n")
	sb.WriteString("\timage_patterns: [")
	for i, p := range cfg.Preview.ImagePatterns {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", p)
	}
	sb.WriteString("]\n")
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
