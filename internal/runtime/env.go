package runtime

import (
	"strings"

	"github.com/codalab/cl-launcher/internal/branding"
)

// BuildEnv returns a copy of base with the installation root exported under
// both the root variable and the interpreter search path variable. Inherited
// values of either variable are replaced, not extended. base is not modified.
func BuildEnv(base []string, root string) []string {
	env := make([]string, len(base), len(base)+2)
	copy(env, base)
	env = setEnv(env, branding.RootEnv(), root)
	env = setEnv(env, branding.SearchPathEnv(), root)
	return env
}

// LookupEnv returns the value of key in env and whether it was present.
func LookupEnv(env []string, key string) (string, bool) {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return e[len(prefix):], true
		}
	}
	return "", false
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
