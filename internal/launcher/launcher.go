package launcher

import (
	"context"
	"errors"
	"os"

	"github.com/codalab/cl-launcher/internal/config"
	"github.com/codalab/cl-launcher/internal/runtime"
	"go.uber.org/zap"
)

// Launcher resolves an installation and dispatches to its interpreter.
// Zero-valued fields fall back to the real process environment, PATH lookup,
// the platform's default executor and a no-op logger.
type Launcher struct {
	Logger   *zap.Logger
	Executor runtime.Executor
	LookPath runtime.LookPathFunc
	// Environ supplies the environment the interpreter inherits.
	Environ  func() []string
	MaxLinks int
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Plan resolves argv0 and builds the hand-off without executing it.
func (l *Launcher) Plan(argv0 string, args []string) (*Invocation, *runtime.Plan, error) {
	log := l.logger()

	maxLinks := l.MaxLinks
	if maxLinks <= 0 {
		maxLinks = config.DefaultMaxLinks
	}

	inv, err := ResolveInvocation(argv0, maxLinks)
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i < len(inv.Chain); i++ {
		log.Debug("followed symlink", zap.String("from", inv.Chain[i-1]), zap.String("to", inv.Chain[i]))
	}
	log.Debug("resolved installation",
		zap.String("invoked", inv.Invoked),
		zap.String("resolved", inv.Resolved),
		zap.String("root", inv.Root))

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	plan, err := runtime.NewPlan(inv.Root, args, environ(), l.LookPath)
	if err != nil {
		if errors.Is(err, runtime.ErrInterpreterNotFound) {
			return inv, nil, &runtime.ExitError{Code: runtime.ExitNotFound, Err: err}
		}
		return inv, nil, err
	}
	log.Debug("selected interpreter",
		zap.String("kind", plan.Interpreter.Kind),
		zap.String("path", plan.Interpreter.Path),
		zap.Strings("argv", plan.Argv))

	return inv, plan, nil
}

// Launch resolves argv0, then hands control to the interpreter with args
// appended after the entrypoint. With the process-replacing executor Launch
// only returns on failure.
func (l *Launcher) Launch(ctx context.Context, argv0 string, args []string) error {
	_, plan, err := l.Plan(argv0, args)
	if err != nil {
		return err
	}

	executor := l.Executor
	if executor == nil {
		executor = runtime.DefaultExecutor()
	}

	// Nothing runs after a successful exec, so flush now.
	_ = l.logger().Sync()
	return executor.Exec(ctx, plan)
}
