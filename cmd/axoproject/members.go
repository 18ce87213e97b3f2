package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"axoproject/internal/manifest"
	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

func newMembersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "members <manifest>",
		Short: "List the members of a dist workspace manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			bag, rep := newSink()
			m, err := manifest.LoadGeneric(source.NewFileSet(), args[0])
			if err != nil {
				rep.Report(projecterr.Render(err))
				return a.report(bag)
			}
			for _, member := range m.Members {
				fmt.Fprintln(a.stdout, member)
			}
			return nil
		},
	}
}
