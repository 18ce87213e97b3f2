package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"axoproject/internal/changelog"
	"axoproject/internal/projecterr"
)

func newChangelogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "changelog <file> <version>",
		Short: "Print the release notes for a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			bag, rep := newSink()
			rel, err := changelog.Lookup(args[0], args[1])
			if err != nil {
				rep.Report(projecterr.Render(err))
				return a.report(bag)
			}
			fmt.Fprintln(a.stdout, rel.Title)
			if body := strings.TrimSpace(rel.Body); body != "" {
				fmt.Fprintf(a.stdout, "\n%s\n", body)
			}
			return nil
		},
	}
}
