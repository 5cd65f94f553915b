package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/codalab/cl-launcher/internal/config"
	"github.com/codalab/cl-launcher/internal/doctor"
	"github.com/codalab/cl-launcher/internal/launcher"
	"github.com/codalab/cl-launcher/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	launcherPath string
	doctorFix    bool
	verbose      bool

	settings  *config.Settings
	cfgResult *config.ValidationResult
	logger    *zap.Logger
)

var doctorCmd = &cobra.Command{
	Use:   branding.CLIName() + "-doctor",
	Short: "Inspect and repair a " + branding.DisplayName() + " launcher installation",
	Long: `Diagnose the installation the ` + branding.CLIName() + ` launcher resolves to: the symlink chain,
the installation root, the interpreter it would pick, the entrypoint, and the
launcher settings file.

Run without a subcommand to perform all checks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, cfgResult, err = config.Load()
		if err != nil {
			return err
		}
		logger = logging.New(cmd.ErrOrStderr(), verbose || settings.Debug, settings.LogFormat)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runCheck,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the installation (default)",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	doctorCmd.PersistentFlags().StringVar(&launcherPath, "launcher", "", "Path of the "+branding.CLIName()+" launcher to inspect (default: this binary)")
	doctorCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log resolution steps to stderr")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired")
	checkCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired")
	doctorCmd.AddCommand(checkCmd)
}

// ExecuteDoctor runs the cl-doctor command tree with build info injected via ldflags.
func ExecuteDoctor(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return doctorCmd.Execute()
}

// resolveTarget resolves the launcher being inspected. Without --launcher it
// is this binary, which is installed next to cl and so shares its root.
func resolveTarget() (*launcher.Invocation, error) {
	argv0 := launcherPath
	if argv0 == "" {
		argv0 = os.Args[0]
	}
	inv, err := launcher.ResolveInvocation(argv0, settings.MaxLinks)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(inv.Chain); i++ {
		logger.Debug("followed symlink", zap.String("from", inv.Chain[i-1]), zap.String("to", inv.Chain[i]))
	}
	logger.Debug("resolved installation", zap.String("root", inv.Root))
	return inv, nil
}

// launcherBinary is the cl executable that sits beside the resolved target.
func launcherBinary(inv *launcher.Invocation) string {
	return filepath.Join(filepath.Dir(inv.Resolved), branding.CLIName())
}

func runCheck(cmd *cobra.Command, args []string) error {
	inv, err := resolveTarget()
	if err != nil {
		return err
	}

	report := doctor.Check(context.Background(), cmd.OutOrStdout(), inv, doctor.Options{
		Fix:          doctorFix,
		MinPython:    settings.MinPython,
		ConfigPath:   config.FilePath(),
		ConfigResult: cfgResult,
	})
	if !report.OK() {
		return fmt.Errorf("%d check(s) failed", report.Failures)
	}
	return nil
}
