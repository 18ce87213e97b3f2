package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"axoproject/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show axoproject build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintln(a.stdout, version.String(a.useColor(a.stdout)))
			return nil
		},
	}
}
