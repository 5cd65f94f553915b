package cli

import (
	"encoding/json"
	"fmt"
	goruntime "runtime"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

// buildInfo describes the launcher build and the layout it was built for.
type buildInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	Date       string `json:"date"`
	Launcher   string `json:"launcher"`
	Repo       string `json:"repo,omitempty"`
	Entrypoint string `json:"entrypoint"`
	Venv       string `json:"venv_python"`
	Go         string `json:"go"`
	Platform   string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:    buildVersion,
		Commit:     buildCommit,
		Date:       buildDate,
		Launcher:   branding.CLIName(),
		Repo:       branding.GitHubRepo(),
		Entrypoint: branding.Entrypoint(),
		Venv:       branding.VenvPython(),
		Go:         goruntime.Version(),
		Platform:   goruntime.GOOS + "/" + goruntime.GOARCH,
	}
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and layout info as JSON")
	doctorCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentBuild()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding build info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", cmd.Root().Name(), info.Version, info.Commit, info.Date)
			fmt.Fprintf(out, "launches %s via %s, %s\n", info.Entrypoint, info.Venv, info.Platform)
		}
		return nil
	},
}
