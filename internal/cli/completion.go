package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Cobra generates the
// scripts; this command only picks the shell dialect.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

The script is written to stdout; source it directly for the current
session or install it where your shell loads completions from:

  Bash:        shelfplan completion bash > /etc/bash_completion.d/shelfplan
  Zsh:         shelfplan completion zsh > "${fpath[1]}/_shelfplan"
  Fish:        shelfplan completion fish > ~/.config/fish/completions/shelfplan.fish
  PowerShell:  shelfplan completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
