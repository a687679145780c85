package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/potplant/pkg/pipeline"
)

// shells maps each supported shell to its completion script generator.
var shells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// flagChoices lists the accepted values of enumerated flags, keyed by
// command name and then flag name.
var flagChoices = map[string]map[string][]string{
	"random":   {"format": pipeline.Formats},
	"decode":   {"format": treeFormats},
	"encode":   {"format": treeFormats},
	"geometry": {"cache": documentCacheKinds},
	"diagram":  {"format": pipeline.DiagramFormats, "cache": documentCacheKinds},
	"serve":    {"cache": cacheKinds},
}

// completionCommand creates the shell completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate a shell completion script for %[1]s.

Completion covers commands, flags and the values of enumerated flags such
as --format and --cache.

Bash:
  $ source <(%[1]s completion bash)

Zsh (with compinit enabled):
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

Fish:
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression
`, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// registerFlagChoices attaches value completion for every flag listed in
// flagChoices to the subcommands of root.
func registerFlagChoices(root *cobra.Command) error {
	for _, cmd := range root.Commands() {
		for flag, values := range flagChoices[cmd.Name()] {
			err := cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
			if err != nil {
				return fmt.Errorf("complete %s --%s: %w", cmd.Name(), flag, err)
			}
		}
	}
	return nil
}
