package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"axoproject/internal/config"
	"axoproject/internal/version"
)

// errReported means diagnostics with errors were already printed.
var errReported = errors.New("errors were reported")

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg     config.Config
	stdout  io.Writer
	stderr  io.Writer
	args    []string
	cleanup func(failed bool)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 1 when an error
// diagnostic was printed or the command failed, 0 otherwise.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, args: args}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.cleanup != nil {
		a.cleanup(err != nil)
	}
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "axoproject: %v\n", err)
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "axoproject",
		Short:         "Detect Cargo, npm and dist workspaces",
		Long:          `axoproject finds the workspace a directory belongs to and explains why it could not when detection fails`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			a.cleanup = cleanup
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to "+config.FileName+" (default: search upwards from the working directory)")
	pf.String("format", "", "diagnostic format (pretty|short|json|msgpack|sarif)")
	pf.String("color", "", "colorize output (auto|always|never)")
	pf.String("path-mode", "", "how to print file paths (auto|absolute|relative|basename)")
	pf.Int("jobs", 0, "max concurrent detectors (0 = one per detector)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")

	root.AddCommand(newDetectCmd(a))
	root.AddCommand(newRepoCmd(a))
	root.AddCommand(newChangelogCmd(a))
	root.AddCommand(newMembersCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

// loadConfig reads the config file and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		a.cfg, err = config.LoadFile(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return err
		}
		a.cfg, _, err = config.Load(wd)
	}
	if err != nil {
		return err
	}

	for name, dst := range map[string]*string{
		"format":    &a.cfg.Output.Format,
		"color":     &a.cfg.Output.Color,
		"path-mode": &a.cfg.Output.PathMode,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if flags.Changed("jobs") {
		if a.cfg.Detect.Jobs, err = flags.GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	return a.cfg.Validate()
}

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
