package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rustci/internal/core/ports"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printOperations(cmd.OutOrStdout(), c.app.Tasks())
		},
	}
}

func printOperations(w io.Writer, ops []ports.OperationInfo) error {
	width := 0
	for _, op := range ops {
		width = max(width, len(op.Name))
	}
	for _, op := range ops {
		name := op.Name
		if op.AcceptsArgs {
			name += "*"
		} else {
			name += " "
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-16s  %s\n", width+1, name, op.Fingerprint, op.Description); err != nil {
			return err
		}
	}
	return nil
}
