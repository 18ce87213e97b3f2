package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"axoproject/internal/detect"
	"axoproject/internal/observ"
	"axoproject/internal/projecterr"
	"axoproject/internal/repourl"
	"axoproject/internal/source"
)

func newDetectCmd(a *app) *cobra.Command {
	var (
		checkRepo bool
		stopDir   string
		uiFlag    string
		timings   bool
	)
	cmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Detect the workspace containing dir",
		Long: `Detect the workspace containing dir (default: the working directory).
Ecosystems are tried in the configured priority order; the first one whose
root manifest exists decides the outcome.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			info, err := os.Stat(abs)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			bag, rep := newSink()
			env := &detect.Env{FileSet: source.NewFileSetWithBase(abs), Reporter: rep}
			reg, err := detect.Default(env).Only(a.cfg.Detect.Ecosystems...)
			if err != nil {
				return err
			}

			mode, err := readUIMode(uiFlag)
			if err != nil {
				return err
			}
			opts := detect.Options{
				Registry: reg,
				Jobs:     a.cfg.Detect.Jobs,
				StopDir:  stopDir,
				Reporter: rep,
			}
			if timings {
				opts.Timer = observ.NewTimer()
			}

			var res *detect.Result
			if shouldUseTUI(mode, a.stdout) {
				res, err = runDetectWithUI(cmd.Context(), a.stdout, abs, opts)
			} else {
				res, err = detect.Detect(cmd.Context(), abs, opts)
			}
			if timings {
				fmt.Fprint(a.stderr, opts.Timer.Summary())
			}
			var perr projecterr.ProjectError
			switch {
			case errors.As(err, &perr):
				rep.Report(projecterr.Render(perr))
			case err != nil:
				return err
			default:
				printWorkspace(a.stdout, res.Workspace, 0)
				if checkRepo {
					hosts := repourl.Options{Hosts: a.cfg.Repository.Hosts}
					if repo, lerr := res.Workspace.Repo(hosts); lerr != nil {
						rep.Report(projecterr.Render(lerr))
					} else if repo != nil {
						fmt.Fprintf(a.stdout, "forge: %s\n", repo.WebURL())
					}
				}
			}
			return a.report(bag)
		},
	}
	cmd.Flags().BoolVar(&checkRepo, "check-repo", false, "fail when the repository is not a supported forge URL")
	cmd.Flags().StringVar(&stopDir, "stop-at", "", "do not search for manifests above this directory")
	cmd.Flags().StringVar(&uiFlag, "ui", "auto", "show live detector progress (auto|on|off)")
	cmd.Flags().BoolVar(&timings, "timings", false, "print how long each detector took")
	return cmd
}

func printWorkspace(w io.Writer, ws *detect.Workspace, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s workspace at %s\n", indent, ws.Ecosystem, ws.Root)
	fmt.Fprintf(w, "%s  manifest: %s\n", indent, ws.ManifestPath)
	if ws.Repository != "" {
		fmt.Fprintf(w, "%s  repository: %s\n", indent, ws.Repository)
	}
	// member packages are listed under their own workspace
	printPackages(w, indent, ws.Packages[:len(ws.Packages)-memberPackages(ws)])
	inc := ws.AutoIncludes
	if inc.Readme != "" {
		fmt.Fprintf(w, "%s  readme: %s\n", indent, inc.Readme)
	}
	if inc.Changelog != "" {
		fmt.Fprintf(w, "%s  changelog: %s\n", indent, inc.Changelog)
	}
	for _, l := range inc.Licenses {
		fmt.Fprintf(w, "%s  license: %s\n", indent, l)
	}
	for _, m := range ws.Members {
		printWorkspace(w, m, depth+1)
	}
}

func memberPackages(ws *detect.Workspace) int {
	n := 0
	for _, m := range ws.Members {
		n += len(m.Packages)
	}
	return n
}

func printPackages(w io.Writer, indent string, pkgs []detect.Package) {
	for _, p := range pkgs {
		line := p.Name
		if p.Version != "" {
			line += " " + p.Version
		}
		if len(p.Binaries) > 0 {
			line += " (bins: " + strings.Join(p.Binaries, ", ") + ")"
		}
		fmt.Fprintf(w, "%s  package: %s\n", indent, line)
	}
}
