// Package toolcheck finds and runs the external tools an ecosystem needs.
package toolcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

// Tool describes an external program.
type Tool struct {
	Name       string
	Manifest   string // manifest whose presence makes the tool necessary
	InstallURL string
}

// Cargo is the Rust package manager.
var Cargo = Tool{Name: "cargo", Manifest: "Cargo.toml", InstallURL: "https://rustup.rs"}

// Npm is the Node package manager.
var Npm = Tool{Name: "npm", Manifest: "package.json", InstallURL: "https://nodejs.org"}

// LookPathFunc resolves a program name to a path. exec.LookPath fits.
type LookPathFunc func(file string) (string, error)

// Require checks that tool is installed.
func Require(tool Tool, lookPath LookPathFunc) projecterr.LeafError {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(tool.Name); err != nil {
		return &projecterr.RequiredToolMissingError{
			Tool:       tool.Name,
			Manifest:   tool.Manifest,
			InstallURL: tool.InstallURL,
		}
	}
	return nil
}

// Runner runs a command in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// RunError reports a command that could not start or exited non-zero.
type RunError struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RunError) Error() string {
	cmd := strings.Join(e.Command, " ")
	if e.ExitCode >= 0 {
		msg := fmt.Sprintf("%s failed with exit code %d", cmd, e.ExitCode)
		if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
			msg += "\n" + stderr
		}
		return msg
	}
	return fmt.Sprintf("failed to run %s: %v", cmd, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return nil, &RunError{
			Command:  append([]string{name}, args...),
			ExitCode: code,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}

// OutputError reports command output that is not UTF-8 text.
type OutputError struct {
	Command string
	Offset  int
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output of %s is not valid utf-8 (byte %d)", e.Command, e.Offset)
}

// Output runs name through r and returns its output as text.
// Run failures are forwarded as process errors, bad output as UTF-8 errors.
func Output(ctx context.Context, r Runner, dir, name string, args ...string) (string, projecterr.LeafError) {
	out, err := r.Run(ctx, dir, name, args...)
	if err != nil {
		return "", projecterr.FromProcess(err)
	}
	if off, bad := source.InvalidUTF8(out); bad {
		return "", projecterr.FromUTF8(&OutputError{Command: name, Offset: off})
	}
	return string(out), nil
}
