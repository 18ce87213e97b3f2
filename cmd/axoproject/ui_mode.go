package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"axoproject/internal/detect"
	"axoproject/internal/manifest"
	"axoproject/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}

type detectOutcome struct {
	result *detect.Result
	err    error
}

// runDetectWithUI runs detection while a progress view draws on out.
func runDetectWithUI(ctx context.Context, out io.Writer, dir string, opts detect.Options) (*detect.Result, error) {
	ecos := make([]manifest.Ecosystem, 0)
	for _, d := range opts.Registry.Detectors() {
		ecos = append(ecos, d.Ecosystem())
	}
	events := make(chan detect.Event, 64)
	outcomeCh := make(chan detectOutcome, 1)

	go func() {
		o := opts
		o.Progress = detect.ChannelSink{Ch: events}
		res, err := detect.Detect(ctx, dir, o)
		outcomeCh <- detectOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("detecting workspace in "+dir, ecos, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
