// Package commands implements the CLI commands for rustci.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rustci/internal/app"
	"go.trai.ch/rustci/internal/build"
	"go.trai.ch/rustci/internal/core/ports"
)

// CLI represents the command line interface for rustci.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Invoke(ctx context.Context, name, args string, opts app.InvokeOptions) (string, error)
	Tasks() []ports.OperationInfo
	Serve(ctx context.Context, opts app.ServeOptions) error
	Call(ctx context.Context, operation, args string, opts app.CallOptions) (string, error)
	Status(ctx context.Context, opts app.CallOptions) (*app.PluginStatus, error)
	Stop(ctx context.Context, opts app.CallOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rustci",
		Short:         "Declarative CI tasks for Rust projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("output-mode", "o", "auto", "Progress output: auto, linear or quiet")
	rootCmd.PersistentFlags().Bool("ci", false, "Render linear progress output (same as -o linear)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newTaskCmds()...)
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCallCmd())
	rootCmd.AddCommand(c.newPluginCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func outputMode(cmd *cobra.Command) string {
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		return "ci"
	}
	mode, _ := cmd.Flags().GetString("output-mode")
	return mode
}
