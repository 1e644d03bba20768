package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the config file, if any, and then applies CHALKBOARD_*
// environment overrides on top.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, err
		}
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".chalkboardrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "chalkboard.rc"} {
		p := filepath.Join(home, ".config", "chalkboard", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ApplyEnv overrides config values from CHALKBOARD_* variables. Malformed
// numeric or boolean values are ignored.
func ApplyEnv(cfg *Config) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
			*dst = b
		}
	}
	str("CHALKBOARD_THEME", &cfg.Theme)
	str("CHALKBOARD_SAVE_DIR", &cfg.SaveDir)
	str("CHALKBOARD_LOG_LEVEL", &cfg.LogLevel)
	str("CHALKBOARD_TOOL", &cfg.Tool)
	str("CHALKBOARD_COLOR", &cfg.Color)
	str("CHALKBOARD_FONT", &cfg.Font)
	num("CHALKBOARD_BRUSH_SIZE", &cfg.BrushSize)
	num("CHALKBOARD_FONT_SIZE", &cfg.FontSize)
	flag("CHALKBOARD_BOLD", &cfg.Bold)
	flag("CHALKBOARD_ITALIC", &cfg.Italic)
	flag("CHALKBOARD_UNDERLINE", &cfg.Underline)
}
