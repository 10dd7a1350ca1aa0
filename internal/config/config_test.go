// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/internal/testutil"
	"github.com/creative-designer/cdlib/pkg/platform"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}

	want := DefaultConfig()
	if cfg.Discovery != want.Discovery {
		t.Errorf("Discovery = %+v, want %+v", cfg.Discovery, want.Discovery)
	}
	if !slices.Equal(cfg.Preview.ImagePatterns, want.Preview.ImagePatterns) {
		t.Errorf("ImagePatterns = %v, want %v", cfg.Preview.ImagePatterns, want.Preview.ImagePatterns)
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %s, want %s", cfg.Watch.Debounce, DefaultDebounce)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `
library_root: "/srv/assets"
discovery: strict: true
preview: image_patterns: ["*.png", "*.jpg"]
watch: debounce: "2s"
`)

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path == "" {
		t.Error("resolved path should name the config file")
	}
	if cfg.LibraryRoot != "/srv/assets" {
		t.Errorf("LibraryRoot = %q, want /srv/assets", cfg.LibraryRoot)
	}
	if !cfg.Discovery.Strict {
		t.Error("Discovery.Strict should be true")
	}
	if !cfg.Discovery.SortByName {
		t.Error("Discovery.SortByName should keep its default")
	}
	if !slices.Equal(cfg.Preview.ImagePatterns, []string{"*.png", "*.jpg"}) {
		t.Errorf("ImagePatterns = %v", cfg.Preview.ImagePatterns)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Debounce = %s, want 2s", cfg.Watch.Debounce)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown color scheme", `ui: color_scheme: "neon"`},
		{"bad debounce", `watch: debounce: "soon"`},
		{"unknown field", `telemetry: true`},
		{"syntax error", `discovery: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeConfigFile(t, dir, tt.content)

			_, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected an error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be ActionableError, got %T", err)
			}
			if ae.IssueID != issue.ConfigLoadFailedId {
				t.Errorf("IssueID = %d, want ConfigLoadFailedId", ae.IssueID)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %q, want mention of missing file", err)
	}
}

func TestFileProvider_LastPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewProvider()
	if _, err := p.Load(t.Context(), LoadOptions{ConfigDirPath: dir}); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := p.LastPath(); got != "" {
		t.Errorf("LastPath() = %q, want empty when defaults apply", got)
	}

	path := writeConfigFile(t, dir, "ui: verbose: true\n")
	if _, err := p.Load(t.Context(), LoadOptions{ConfigDirPath: dir}); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := p.LastPath(); got != path {
		t.Errorf("LastPath() = %q, want %q", got, path)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := contextWithCancel(t)
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LibrariesDir = "/opt/cd/libraries"
	cfg.Discovery.SortByName = false
	cfg.Watch.Debounce = 90 * time.Second
	cfg.UI.ColorScheme = ColorSchemeDark

	dir := t.TempDir()
	writeConfigFile(t, dir, GenerateCUE(cfg))

	got, _, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loading generated CUE failed: %v", err)
	}
	if got.LibrariesDir != cfg.LibrariesDir {
		t.Errorf("LibrariesDir = %q, want %q", got.LibrariesDir, cfg.LibrariesDir)
	}
	if got.Discovery != cfg.Discovery {
		t.Errorf("Discovery = %+v, want %+v", got.Discovery, cfg.Discovery)
	}
	if got.Watch.Debounce != cfg.Watch.Debounce {
		t.Errorf("Debounce = %s, want %s", got.Watch.Debounce, cfg.Watch.Debounce)
	}
	if got.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", got.UI.ColorScheme)
	}
}

//nolint:paralleltest // mutates the package-level config dir override
func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), AppName)
	t.Cleanup(SetConfigDirOverride(dir))

	created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if !created {
		t.Error("first call should create the file")
	}

	created, err = CreateDefaultConfig()
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() error: %v", err)
	}
	if created {
		t.Error("second call should leave the existing file alone")
	}

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{})
	if err != nil {
		t.Fatalf("loading default config failed: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %s, want %s", cfg.Watch.Debounce, DefaultDebounce)
	}
}

//nolint:paralleltest // mutates the package-level config dir override
func TestResolveLibraryRoot(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(SetConfigDirOverride(dir))

	cfg := DefaultConfig()
	root, err := cfg.ResolveLibraryRoot()
	if err != nil {
		t.Fatalf("ResolveLibraryRoot() error: %v", err)
	}
	if root != dir {
		t.Errorf("ResolveLibraryRoot() = %q, want config dir %q", root, dir)
	}

	cfg.LibraryRoot = "/srv/assets"
	if root, _ = cfg.ResolveLibraryRoot(); root != "/srv/assets" {
		t.Errorf("ResolveLibraryRoot() = %q, want /srv/assets", root)
	}
}

func TestResolveLibrariesDir_Explicit(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LibrariesDir = "/opt/cd/libraries"
	got, err := cfg.ResolveLibrariesDir()
	if err != nil {
		t.Fatalf("ResolveLibrariesDir() error: %v", err)
	}
	if got != "/opt/cd/libraries" {
		t.Errorf("ResolveLibrariesDir() = %q", got)
	}
}

//nolint:paralleltest // mutates HOME and XDG_CONFIG_HOME
func TestConfigDir_Platform(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	switch runtime.GOOS {
	case platform.Windows:
		appData := filepath.Join(home, "AppData", "Roaming")
		t.Cleanup(testutil.MustSetenv(t, "APPDATA", appData))
		assertConfigDir(t, filepath.Join(appData, AppName))
	case platform.Darwin:
		assertConfigDir(t, filepath.Join(home, "Library", "Application Support", AppName))
	default:
		xdg := filepath.Join(home, "xdg")
		restore := testutil.MustSetenv(t, "XDG_CONFIG_HOME", xdg)
		assertConfigDir(t, filepath.Join(xdg, AppName))
		restore()

		t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", ""))
		assertConfigDir(t, filepath.Join(home, ".config", AppName))
	}
}

func assertConfigDir(t *testing.T, want string) {
	t.Helper()
	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}
