package commands

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/rustci/internal/app"
	"go.trai.ch/rustci/internal/catalog"
	"go.trai.ch/rustci/internal/core/ports"
)

// newTaskCmds returns a subcommand for every built-in task the registry holds.
func (c *CLI) newTaskCmds() []*cobra.Command {
	var cmds []*cobra.Command
	for _, op := range c.app.Tasks() {
		if slices.Contains(catalog.Names, op.Name) {
			cmds = append(cmds, c.newTaskCmd(op))
		}
	}
	return cmds
}

func (c *CLI) newTaskCmd(op ports.OperationInfo) *cobra.Command {
	name := op.Name
	cmd := &cobra.Command{
		Use:   name,
		Short: op.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.invoke(cmd, name, args)
		},
	}
	if op.AcceptsArgs {
		cmd.Use = name + " [-- args...]"
		cmd.Args = cobra.ArbitraryArgs
	}
	return cmd
}

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <task> [-- args...]",
		Short: "Run any registered task",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.invoke(cmd, args[0], args[1:])
		},
	}
}

func (c *CLI) invoke(cmd *cobra.Command, name string, args []string) error {
	out, err := c.app.Invoke(cmd.Context(), name, strings.Join(args, " "), app.InvokeOptions{
		OutputMode: outputMode(cmd),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write([]byte(out))
	return err
}
