package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/codalab/cl-launcher/internal/launcher"
	"github.com/codalab/cl-launcher/internal/platform"
	"github.com/spf13/cobra"
)

var (
	linkBinDir string
	linkForce  bool
)

func init() {
	linkCmd.Flags().StringVar(&linkBinDir, "bin-dir", "/usr/local/bin", "Directory on PATH to place the link in")
	linkCmd.Flags().BoolVar(&linkForce, "force", false, "Replace an existing file or link")
	doctorCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Put the launcher on PATH via a symbolic link",
	Long: `Create <bin-dir>/` + branding.CLIName() + ` pointing at the launcher of this installation.
The launcher follows the link back to its installation root at run time.

Example:
  ` + branding.CLIName() + `-doctor link --bin-dir ~/.local/bin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := resolveTarget()
		if err != nil {
			return err
		}

		target := launcherBinary(inv)
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("launcher not found at %s: %w", target, err)
		}

		link := filepath.Join(linkBinDir, branding.CLIName())
		if _, err := os.Lstat(link); err == nil {
			if !linkForce {
				return fmt.Errorf("%s already exists (use --force to replace it)", link)
			}
			if err := platform.RemoveSymlink(link); err != nil {
				return fmt.Errorf("removing %s: %w", link, err)
			}
		}

		if err := os.MkdirAll(linkBinDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", linkBinDir, err)
		}
		if err := platform.CreateSymlink(target, link); err != nil {
			return fmt.Errorf("linking %s: %w", link, err)
		}

		// The link must lead back to the same installation.
		check, err := launcher.ResolveInvocation(link, settings.MaxLinks)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", link, err)
		}
		if check.Root != inv.Root {
			return fmt.Errorf("%s resolves to root %s, expected %s", link, check.Root, inv.Root)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s -> %s\n", link, target)
		return nil
	},
}
