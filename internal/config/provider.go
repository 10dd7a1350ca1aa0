// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

type (
	// LoadOptions selects where configuration is read from. The zero value
	// reads config.cue from ConfigDir().
	LoadOptions struct {
		// ConfigFilePath names the file to read; it must exist.
		ConfigFilePath string
		// ConfigDirPath replaces ConfigDir() when looking for config.cue.
		ConfigDirPath string
	}

	// Provider loads configuration. The CLI depends on this interface so tests
	// can supply a fixed Config.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// FileProvider reads config.cue and remembers which file it read.
	FileProvider struct {
		mu       sync.Mutex
		lastPath string
	}
)

// NewProvider returns a Provider backed by config.cue files.
func NewProvider() *FileProvider {
	return &FileProvider{}
}

// Load reads configuration from the requested source, falling back to
// defaults when no file exists.
func (p *FileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.lastPath = path
	p.mu.Unlock()
	return cfg, nil
}

// LastPath returns the file read by the last successful Load, or "" when
// that load used defaults only.
func (p *FileProvider) LastPath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPath
}
