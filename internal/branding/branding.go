// Package branding provides compile-time identity values for the launcher.
//
// branding.yaml is baked into the binary with //go:embed. It names the
// environment variables the launcher exports and the fixed paths it expects
// under the installation root.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	GoModule       string `yaml:"go_module"`
	GitHubRepo     string `yaml:"github_repo"`
	RootEnv        string `yaml:"root_env"`
	SearchPathEnv  string `yaml:"search_path_env"`
	VenvPython     string `yaml:"venv_python"`
	FallbackPython string `yaml:"fallback_python"`
	Entrypoint     string `yaml:"entrypoint"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:        "cl",
			DisplayName:    "CodaLab",
			Description:    "Launcher for the CodaLab command-line client",
			HomeDir:        ".codalab",
			EnvPrefix:      "CODALAB",
			GoModule:       "github.com/codalab/cl-launcher",
			GitHubRepo:     "codalab/codalab-cli",
			RootEnv:        "CODALAB_CLI",
			SearchPathEnv:  "PYTHONPATH",
			VenvPython:     "venv/bin/python",
			FallbackPython: "python",
			Entrypoint:     "codalab/bin/cl.py",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the launcher command name (e.g., "cl").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".codalab").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CODALAB").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of the downstream client.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RootEnv is the variable that carries the installation root.
func RootEnv() string { load(); return defaults.RootEnv }

// SearchPathEnv is the interpreter module search path variable.
func SearchPathEnv() string { load(); return defaults.SearchPathEnv }

// VenvPython is the slash-separated path of the preferred interpreter,
// relative to the installation root.
func VenvPython() string { load(); return defaults.VenvPython }

// FallbackPython is the interpreter name looked up on PATH when the
// virtual environment has none.
func FallbackPython() string { load(); return defaults.FallbackPython }

// Entrypoint is the slash-separated path of the downstream script, relative
// to the installation root.
func Entrypoint() string { load(); return defaults.Entrypoint }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CODALAB_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
