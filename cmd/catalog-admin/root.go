package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalog-admin",
		Short:         "Catalog administration tool (list and reorder entries)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newMoveCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
