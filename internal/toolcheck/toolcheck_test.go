package toolcheck

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/projecterr"
)

type fakeRunner struct {
	out []byte
	err error
}

func (f fakeRunner) Run(context.Context, string, string, ...string) ([]byte, error) {
	return f.out, f.err
}

func TestRequireMissingCargo(t *testing.T) {
	missing := func(string) (string, error) { return "", exec.ErrNotFound }
	err := Require(Cargo, missing)
	require.NotNil(t, err)

	d := projecterr.Render(err)
	want := projecterr.Render(projecterr.CargoMissing())
	assert.Equal(t, want, d)
}

func TestRequirePresent(t *testing.T) {
	found := func(name string) (string, error) { return "/usr/bin/" + name, nil }
	assert.Nil(t, Require(Npm, found))
}

func TestOutputForwardsRunError(t *testing.T) {
	runErr := &RunError{Command: []string{"cargo", "metadata"}, ExitCode: 101, Stderr: "error: could not find Cargo.toml\n"}
	_, err := Output(context.Background(), fakeRunner{err: runErr}, ".", "cargo", "metadata")

	var pe *projecterr.ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, runErr.Error(), err.Error())
	assert.Equal(t, "cargo metadata failed with exit code 101\nerror: could not find Cargo.toml", err.Error())
}

func TestOutputRejectsInvalidUTF8(t *testing.T) {
	_, err := Output(context.Background(), fakeRunner{out: []byte("ok\xfe")}, ".", "cargo")
	var ue *projecterr.UTF8Error
	require.ErrorAs(t, err, &ue)
	var oe *OutputError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 2, oe.Offset)
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	out, err := ExecRunner{}.Run(context.Background(), t.TempDir(), "sh", "-c", "printf hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))

	_, err = ExecRunner{}.Run(context.Background(), t.TempDir(), "sh", "-c", "echo nope >&2; exit 3")
	var re *RunError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 3, re.ExitCode)
	assert.Contains(t, re.Stderr, "nope")
}
