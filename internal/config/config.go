// Package config loads the optional ~/.gofindrc.yaml file that sets a
// preferred backend and walk defaults (§4.5, §6). The auto-selector's
// thresholds are not configurable through it. Its absence is not an
// error: every field has a zero-value default matching the built-in
// policy.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the parsed contents of ~/.gofindrc.yaml.
type Config struct {
	// PreferredBackend forces a backend ("scalar", "simd", "metal",
	// "vulkan") unless overridden by an explicit --backend flag.
	PreferredBackend string `yaml:"preferred_backend"`

	// MinGPUPaths is parsed from the file but not read by anything: the
	// selector always uses its built-in workload-size threshold (1024
	// paths) below which dispatch stays on CPU.
	MinGPUPaths int `yaml:"min_gpu_paths"`

	// RespectGitignore enables .gitignore-aware pruning by default.
	RespectGitignore bool `yaml:"respect_gitignore"`

	// IncludeHidden controls whether dotfiles are walked by default.
	IncludeHidden *bool `yaml:"include_hidden"`
}

// DefaultPath returns ~/.gofindrc.yaml, or "" if the home directory
// cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gofindrc.yaml")
}

// Load reads and parses path. A missing file yields a zero-value Config
// and no error — the config file is entirely optional.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// IncludeHiddenOrDefault resolves the IncludeHidden override, falling
// back to def when the config file did not set it.
func (c Config) IncludeHiddenOrDefault(def bool) bool {
	if c.IncludeHidden == nil {
		return def
	}
	return *c.IncludeHidden
}
