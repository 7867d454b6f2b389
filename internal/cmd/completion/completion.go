// Package completion provides shell completion support.
package completion

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/pinterest-ads-cli/internal/cmd/root"
)

// Register registers the completion command
func Register(parent *cobra.Command, opts *root.Options) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pinads.

To load completions:

Bash:
  $ source <(pinads completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ pinads completion bash > /etc/bash_completion.d/pinads
  # macOS:
  $ pinads completion bash > $(brew --prefix)/etc/bash_completion.d/pinads

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ pinads completion zsh > "${fpath[1]}/_pinads"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pinads completion fish | source
  # To load completions for each session, execute once:
  $ pinads completion fish > ~/.config/fish/completions/pinads.fish

PowerShell:
  PS> pinads completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> pinads completion powershell > pinads.ps1
  # and source this file from your PowerShell profile.
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

	parent.AddCommand(cmd)
}
