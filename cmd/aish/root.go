package main

import (
	"strings"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	acceptAll   bool
	interactive bool
	debug       bool
}

const usageExample = `Example:
  aish "list the files in this directory and summarise the README"
  aish -i`

func newRootCmd(app *App) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "aish [flags] <prompt...>",
		Short: "Run shell commands and edit files with an LLM",
		Long: `aish sends your prompt to a language model that can run shell commands
and read and write files in the current directory. Every action is shown
to you for approval unless --accept-all is given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if opts.interactive {
				return app.runInteractive(cmd.Context(), opts, prompt)
			}
			if prompt == "" {
				cmd.SetOut(app.errOut)
				_ = cmd.Usage()
				app.console.Println("")
				app.console.Println(usageExample)
				return errUsage
			}
			return app.runPrompt(cmd.Context(), opts, prompt)
		},
	}

	root.Flags().BoolVar(&opts.acceptAll, "accept-all", false, "approve every operation without asking")
	root.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "keep the conversation open and read follow-up prompts")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log debug output to the terminal and the log file")

	root.SetOut(app.out)
	root.SetErr(app.errOut)

	root.AddCommand(
		newInitCmd(app),
		newConfigCmd(app),
		newRegenCmd(app),
		newShowSystemCmd(app),
	)
	return root
}
