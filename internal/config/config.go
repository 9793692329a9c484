// Package config loads gmlfmt's project configuration: an optional
// ".gmlfmt.yaml" file layered under environment variable overrides.
//
// The scanner core never imports this package; only cmd/gmlfmt does.
package config

import (
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Config controls which files gmlfmt walks and how it renders output.
type Config struct {
	// Extensions lists the file extensions Walk recognizes.
	Extensions []string `yaml:"extensions"`
	// SkipDirs names additional directories to skip. It is read from the
	// config file, but Walk does not consult it: only dot-directories are
	// pruned.
	SkipDirs []string `yaml:"skip_dirs"`
	// NoColor disables ANSI color in CLI output.
	NoColor bool `yaml:"no_color"`
	// LogLevel is one of "trace", "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no ".gmlfmt.yaml" is
// present and no environment overrides are set.
func Default() Config {
	return Config{
		Extensions: []string{".gml"},
		LogLevel:   "info",
	}
}

// Load reads ".gmlfmt.yaml" from dir if present, then applies environment
// overrides. A missing config file is not an error; Load falls back to
// Default() and applies overrides on top of it.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := dir + string(os.PathSeparator) + ".gmlfmt.yaml"
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err):
		// no project config; defaults stand
	default:
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers GMLFMT_NO_COLOR / GMLFMT_EXTENSIONS / GMLFMT_LOG_LEVEL
// on top of cfg, mirroring how a MIB loader layers MIBDIRS/SMIPATH on top
// of its configured defaults.
func applyEnv(cfg *Config) {
	if env.Has("GMLFMT_NO_COLOR") {
		cfg.NoColor = env.Bool("GMLFMT_NO_COLOR")
	}
	if exts := env.StrAlt("GMLFMT_EXTENSIONS", ""); exts != "" {
		cfg.Extensions = splitExtensions(exts)
	}
	if level := env.StrAlt("GMLFMT_LOG_LEVEL", ""); level != "" {
		cfg.LogLevel = level
	}
}

func splitExtensions(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
