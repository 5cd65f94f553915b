package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/codalab/cl-launcher/internal/launcher"
	"github.com/codalab/cl-launcher/internal/runtime"
	"github.com/spf13/cobra"
)

var planJSON bool

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON")
	doctorCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan [-- args...]",
	Short: "Show what the launcher would execute, without running it",
	Long: `Print the interpreter, argument vector and exported variables the launcher
would use for the given arguments.

  ` + branding.CLIName() + `-doctor plan -- upload data.tgz --name "my data"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := resolveTarget()
		if err != nil {
			return err
		}

		l := &launcher.Launcher{Logger: logger, MaxLinks: settings.MaxLinks}
		_, plan, err := l.Plan(launcherBinary(inv), args)
		if err != nil {
			return err
		}

		rootEnv, _ := runtime.LookupEnv(plan.Env, branding.RootEnv())
		searchEnv, _ := runtime.LookupEnv(plan.Env, branding.SearchPathEnv())

		out := cmd.OutOrStdout()
		if planJSON {
			info := map[string]interface{}{
				"root":        plan.Layout.Root,
				"interpreter": plan.Interpreter.Path,
				"kind":        plan.Interpreter.Kind,
				"argv":        plan.Argv,
				"env": map[string]string{
					branding.RootEnv():       rootEnv,
					branding.SearchPathEnv(): searchEnv,
				},
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling plan: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		quoted := make([]string, len(plan.Argv))
		for i, a := range plan.Argv {
			quoted[i] = strconv.Quote(a)
		}
		fmt.Fprintf(out, "root:        %s\n", plan.Layout.Root)
		fmt.Fprintf(out, "interpreter: %s (%s)\n", plan.Interpreter.Path, plan.Interpreter.Kind)
		fmt.Fprintf(out, "argv:        %s\n", strings.Join(quoted, " "))
		fmt.Fprintf(out, "env:         %s=%s\n", branding.RootEnv(), rootEnv)
		fmt.Fprintf(out, "             %s=%s\n", branding.SearchPathEnv(), searchEnv)
		return nil
	},
}
