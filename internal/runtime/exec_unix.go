//go:build !windows

package runtime

import (
	"context"
	"syscall"
)

// Replace swaps the current process image for the interpreter. Exec only
// returns when the replacement fails.
type Replace struct{}

// Exec calls execve(2) with the plan's path, argv and environment.
func (Replace) Exec(_ context.Context, p *Plan) error {
	err := syscall.Exec(p.Interpreter.Path, p.Argv, p.Env)
	return execFailure(p.Interpreter.Path, err)
}

// DefaultExecutor returns the process-replacing executor.
func DefaultExecutor() Executor {
	return Replace{}
}
