package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "launcher"
	fileType = "yaml"
)

// Keys understood in the config file and as CODALAB_LAUNCHER_<KEY>.
const (
	KeyDebug     = "debug"
	KeyLogFormat = "log_format"
	KeyMaxLinks  = "max_links"
	KeyMinPython = "min_python"
)

// Defaults.
const (
	// DefaultMaxLinks matches the kernel's MAXSYMLINKS on Linux.
	DefaultMaxLinks  = 40
	DefaultLogFormat = "console"
	DefaultMinPython = ">=2.7"
)

// Settings is the resolved launcher configuration.
type Settings struct {
	Debug     bool
	LogFormat string
	MaxLinks  int
	MinPython string
}

// Dir returns the path to the config directory (~/.codalab/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the config file path. CODALAB_LAUNCHER_CONFIG overrides
// the default ~/.codalab/launcher.yaml.
func FilePath() string {
	if v := os.Getenv(envPrefix() + "_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

func envPrefix() string {
	return branding.EnvVar("LAUNCHER")
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() *Settings {
	return &Settings{
		LogFormat: DefaultLogFormat,
		MaxLinks:  DefaultMaxLinks,
		MinPython: DefaultMinPython,
	}
}

// Load reads settings from the environment and, when present and valid, the
// config file. A config file that cannot be read or fails schema validation
// is not applied; its issues are returned so the caller can decide how loud
// to be.
func Load() (*Settings, *ValidationResult, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyMaxLinks, DefaultMaxLinks)
	v.SetDefault(KeyMinPython, DefaultMinPython)

	result := &ValidationResult{Valid: true}

	path := FilePath()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file; environment and defaults only.
	case err != nil:
		result = &ValidationResult{Issues: []ValidationIssue{{
			Message: fmt.Sprintf("reading config file: %v", err),
			Keyword: "read",
		}}}
	default:
		result, err = Validate(data)
		if err != nil {
			return nil, nil, fmt.Errorf("validating config file %s: %w", path, err)
		}
		if result.Valid {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	s := &Settings{
		Debug:     v.GetBool(KeyDebug),
		LogFormat: v.GetString(KeyLogFormat),
		MaxLinks:  v.GetInt(KeyMaxLinks),
		MinPython: v.GetString(KeyMinPython),
	}
	// Environment values bypass the schema; fall back to defaults for junk.
	if s.MaxLinks < 1 || s.MaxLinks > 255 {
		s.MaxLinks = DefaultMaxLinks
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		s.LogFormat = DefaultLogFormat
	}
	if s.MinPython == "" {
		s.MinPython = DefaultMinPython
	}
	return s, result, nil
}
