//go:build windows

package runtime

// DefaultExecutor returns a spawning executor; Windows has no execve.
func DefaultExecutor() Executor {
	return &Spawn{}
}
