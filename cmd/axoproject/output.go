package main

import (
	"io"
	"os"

	"axoproject/internal/diag"
	"axoproject/internal/diagfmt"
	"axoproject/internal/version"
)

const maxDiagnostics = 100

// useColor resolves the configured color mode for output written to w.
func (a *app) useColor(w io.Writer) bool {
	switch a.cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(w)
}

func (a *app) outputOptions() (diagfmt.Options, error) {
	format, err := diagfmt.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return diagfmt.Options{}, err
	}
	pathMode, err := diagfmt.ParsePathMode(a.cfg.Output.PathMode)
	if err != nil {
		return diagfmt.Options{}, err
	}
	baseDir, _ := os.Getwd()
	width := a.cfg.Output.Width
	if width == 0 {
		width = terminalWidth(a.stderr)
	}
	return diagfmt.Options{
		Format: format,
		Pretty: diagfmt.PrettyOpts{
			Color:    a.useColor(a.stderr),
			Context:  1,
			PathMode: pathMode,
			BaseDir:  baseDir,
			Width:    width,
		},
		JSON: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          baseDir,
		},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "axoproject",
			ToolVersion:    version.Version,
			InvocationArgs: a.args,
			BaseDir:        baseDir,
		},
	}, nil
}

// report prints the collected diagnostics to stderr. It returns
// errReported when any of them is an error.
func (a *app) report(bag *diag.Bag) error {
	if bag.Len() == 0 {
		return nil
	}
	opts, err := a.outputOptions()
	if err != nil {
		return err
	}
	if err := diagfmt.Write(a.stderr, bag, opts); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errReported
	}
	return nil
}

// newSink returns a bag and a reporter that drops repeated diagnostics.
func newSink() (*diag.Bag, diag.Reporter) {
	bag := diag.NewBag(maxDiagnostics)
	return bag, diag.NewDedupReporter(diag.BagReporter{Bag: bag})
}
