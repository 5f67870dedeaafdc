package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/aish/internal/workspace"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Show or change configuration values",
		Long: `Without arguments, print every setting.
With a key, print its value. With a key and a value, store the value.
Keys use dotted paths such as llm.model or security.allow_absolute_paths.
List values such as whitelist are given comma-separated.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runConfig(args)
		},
	}
}

func (a *App) runConfig(args []string) error {
	mgr, err := a.manager()
	if err != nil {
		return err
	}

	if len(args) == 2 {
		if err := mgr.SetValue(args[0], args[1]); err != nil {
			return err
		}
		a.console.Success(fmt.Sprintf("✓ %s = %s", args[0], args[1]))
		return nil
	}

	cfg, err := mgr.Load()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		a.console.Println(value)
		return nil
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	a.console.Settings(settings)
	return nil
}

func newRegenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "regen",
		Short: "Restore the default system prompt template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager()
			if err != nil {
				return err
			}
			if err := mgr.RegenSystemPrompt(); err != nil {
				return err
			}
			app.console.Success("✓ System prompt regenerated: " + mgr.SystemPromptPath())
			return nil
		},
	}
}

func newShowSystemCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "showsystem",
		Short: "Print the system prompt for the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager()
			if err != nil {
				return err
			}
			template, err := mgr.LoadSystemPrompt()
			if err != nil {
				return err
			}
			cwd, flags, err := workspace.Current()
			if err != nil {
				return err
			}
			app.console.Markdown(workspace.Render(template, cwd, flags))
			return nil
		},
	}
}
