package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"axoproject/internal/projecterr"
	"axoproject/internal/repourl"
)

func newRepoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repo <url>",
		Short: "Check that a repository URL points at a supported forge",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			bag, rep := newSink()
			repo, err := repourl.Parse(args[0], repourl.Options{Hosts: a.cfg.Repository.Hosts})
			if err != nil {
				rep.Report(projecterr.Render(err))
				return a.report(bag)
			}
			fmt.Fprintf(a.stdout, "host: %s\nowner: %s\nname: %s\nweb: %s\n", repo.Host, repo.Owner, repo.Name, repo.WebURL())
			return nil
		},
	}
}
