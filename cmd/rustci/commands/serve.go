package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/rustci/internal/app"
	"go.trai.ch/rustci/internal/core/domain"
)

const socketUsage = "Plugin service socket (default .rustci/plugin.sock)"

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the registered tasks as a gRPC plugin service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			idle, _ := cmd.Flags().GetDuration("idle-timeout")
			return c.app.Serve(cmd.Context(), app.ServeOptions{Socket: socket, IdleTimeout: idle})
		},
	}
	cmd.Flags().String("socket", "", socketUsage)
	cmd.Flags().Duration("idle-timeout", domain.DefaultIdleTimeout, "Exit after this long without requests")
	return cmd
}

func (c *CLI) newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <operation> [-- args...]",
		Short: "Invoke an operation on a running plugin service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			out, err := c.app.Call(cmd.Context(), args[0], strings.Join(args[1:], " "), app.CallOptions{Socket: socket})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(out))
			return err
		},
	}
	cmd.Flags().String("socket", "", socketUsage)
	return cmd
}

func (c *CLI) newPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage a running plugin service",
	}
	cmd.PersistentFlags().String("socket", "", socketUsage)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show plugin service status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			status, err := c.app.Status(cmd.Context(), app.CallOptions{Socket: socket})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			idle := status.IdleRemaining.Round(time.Second)
			if _, err := fmt.Fprintf(w, "running, idle timeout in %v\n", idle); err != nil {
				return err
			}
			return printOperations(w, status.Operations)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the plugin service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			return c.app.Stop(cmd.Context(), app.CallOptions{Socket: socket})
		},
	})

	return cmd
}
