package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/codalab/cl-launcher/internal/config"
	"github.com/codalab/cl-launcher/internal/launcher"
	"github.com/codalab/cl-launcher/internal/logging"
	"github.com/codalab/cl-launcher/internal/runtime"
	"go.uber.org/zap"
)

// Overridable for tests.
var (
	launchExecutor runtime.Executor
	launchStderr   io.Writer = os.Stderr
)

// Launch runs the cl launcher for argv (os.Args) and returns the exit code
// for main. When the hand-off succeeds on Unix it never returns.
func Launch(argv []string) int {
	if len(argv) == 0 {
		argv = []string{branding.CLIName()}
	}

	settings, cfgResult, cfgErr := config.Load()
	if cfgErr != nil {
		settings = config.Defaults()
	}

	log := logging.New(launchStderr, settings.Debug, settings.LogFormat)
	defer log.Sync()

	switch {
	case cfgErr != nil:
		log.Warn("ignoring launcher config", zap.Error(cfgErr))
	case !cfgResult.Valid:
		log.Warn("ignoring invalid launcher config",
			zap.String("path", config.FilePath()),
			zap.String("issues", cfgResult.Summary()))
	}

	l := &launcher.Launcher{
		Logger:   log,
		Executor: launchExecutor,
		MaxLinks: settings.MaxLinks,
	}
	err := l.Launch(context.Background(), argv[0], argv[1:])
	return exitCode(launchStderr, err)
}

// exitCode reports err on w and maps it to a process exit code. A child's
// own non-zero exit is passed through silently.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *runtime.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", branding.CLIName(), exitErr.Err)
		}
		return exitErr.Code
	}
	fmt.Fprintf(w, "%s: %v\n", branding.CLIName(), err)
	return 1
}
