package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColoredPlain(t *testing.T) {
	assert.Equal(t, "1.2.3", Colored("1.2.3", false))
	assert.Equal(t, "0.1.0-dev", Colored("0.1.0-dev", false))
	assert.Equal(t, "nightly", Colored("nightly", true))
}

func TestColoredKeepsComponents(t *testing.T) {
	got := Colored("1.2.3+abc", true)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "+abc")
	assert.NotEqual(t, "1.2.3+abc", got)
}

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	assert.Equal(t, "axoproject 1.2.3", String(false))

	GitCommit, BuildDate = "abc123", "2024-01-15"
	assert.Equal(t, "axoproject 1.2.3 (abc123 2024-01-15)", String(false))
}
