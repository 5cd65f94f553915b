// Package config manages launcher settings stored at ~/.codalab/launcher.yaml
// and in CODALAB_LAUNCHER_* environment variables. The file is checked against
// an embedded JSON schema before it is applied.
package config
