package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHelloCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "hello [name]",
		Short:       "Print a greeting",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"config": configOptional},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "World"
			if len(args) == 1 {
				name = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s!\n", name)
			return nil
		},
	}
}
