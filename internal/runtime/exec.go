package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// Shell-compatible exit codes for a failed hand-off.
const (
	ExitCannotExecute = 126
	ExitNotFound      = 127
)

// Executor hands control to the interpreter described by a Plan.
type Executor interface {
	Exec(ctx context.Context, p *Plan) error
}

// ExitError carries the exit code the launcher should terminate with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// execFailure maps a failure to start a program onto the code a shell
// would report for it.
func execFailure(path string, err error) *ExitError {
	code := ExitCannotExecute
	if errors.Is(err, fs.ErrNotExist) {
		code = ExitNotFound
	}
	return &ExitError{Code: code, Err: fmt.Errorf("executing %s: %w", path, err)}
}

// Spawn runs the interpreter as a child process with inherited streams and
// waits for it. A non-zero child exit is reported as an *ExitError carrying
// the child's code.
type Spawn struct {
	// Stdin, Stdout and Stderr can be set for testing; defaults to the
	// launcher's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Exec starts the interpreter and blocks until it exits.
func (s *Spawn) Exec(ctx context.Context, p *Plan) error {
	cmd := exec.CommandContext(ctx, p.Interpreter.Path)
	cmd.Args = p.Argv
	cmd.Env = p.Env

	cmd.Stdin = s.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = s.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal.
			code = 1
		}
		return &ExitError{Code: code}
	}
	return execFailure(p.Interpreter.Path, err)
}
