// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultDebounce is the default quiet period before a libraries rescan.
	DefaultDebounce = 500 * time.Millisecond
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidImagePattern is returned when a preview image pattern is blank.
	ErrInvalidImagePattern = errors.New("invalid image pattern")
	// ErrInvalidDebounce is returned when the watch debounce is not positive.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when one or more Config fields are invalid.
	// It wraps ErrInvalidConfig and carries the individual field errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// LibraryRoot is the root of the built-in default asset folders.
		// Empty means the configuration directory.
		LibraryRoot string `json:"library_root" mapstructure:"library_root"`
		// LibrariesDir holds one sub-directory per bundled script library.
		// Empty means "libraries" next to the executable.
		LibrariesDir string `json:"libraries_dir" mapstructure:"libraries_dir"`
		// Discovery configures library discovery.
		Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
		// Preview configures category preview listings.
		Preview PreviewConfig `json:"preview" mapstructure:"preview"`
		// Watch configures the libraries directory watcher.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// DiscoveryConfig configures how script libraries are discovered.
	DiscoveryConfig struct {
		// Strict aborts the whole pass on the first library that fails to load.
		Strict bool `json:"strict" mapstructure:"strict"`
		// SortByName orders libraries by directory name rather than raw
		// filesystem enumeration order.
		SortByName bool `json:"sort_by_name" mapstructure:"sort_by_name"`
	}

	// PreviewConfig configures preview listings.
	PreviewConfig struct {
		// ImagePatterns are doublestar globs matched against lower-cased file names.
		ImagePatterns []string `json:"image_patterns" mapstructure:"image_patterns"`
	}

	// WatchConfig configures the libraries watcher.
	WatchConfig struct {
		// Debounce is the quiet period before a rescan.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid checks the constraints the CUE schema cannot express on its own.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	for i, p := range c.Preview.ImagePatterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("preview.image_patterns[%d]: %w", i, ErrInvalidImagePattern))
		}
	}
	if c.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("watch.debounce %s: %w", c.Watch.Debounce, ErrInvalidDebounce))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Strict:     false,
			SortByName: true,
		},
		Preview: PreviewConfig{
			ImagePatterns: []string{"*.png"},
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
