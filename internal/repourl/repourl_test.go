package repourl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/projecterr"
)

func TestParseAccepted(t *testing.T) {
	tests := []struct {
		in   string
		want Repo
	}{
		{"https://github.com/axodotdev/axoproject", Repo{"github.com", "axodotdev", "axoproject"}},
		{"https://github.com/axodotdev/axoproject.git", Repo{"github.com", "axodotdev", "axoproject"}},
		{"git+https://github.com/axodotdev/axoproject.git", Repo{"github.com", "axodotdev", "axoproject"}},
		{"https://GitHub.com/axodotdev/axoproject/tree/main", Repo{"github.com", "axodotdev", "axoproject"}},
		{"git@github.com:axodotdev/axoproject.git", Repo{"github.com", "axodotdev", "axoproject"}},
		{"ssh://git@github.com/axodotdev/axoproject", Repo{"github.com", "axodotdev", "axoproject"}},
		{"github:axodotdev/axoproject", Repo{"github.com", "axodotdev", "axoproject"}},
		{"axodotdev/axoproject", Repo{"github.com", "axodotdev", "axoproject"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, Options{})
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejected(t *testing.T) {
	tests := []struct {
		in    string
		check func(t *testing.T, err error)
	}{
		{"", func(t *testing.T, err error) {
			var e *projecterr.RepoParseError
			assert.ErrorAs(t, err, &e)
		}},
		{"https://github.com/onlyowner", func(t *testing.T, err error) {
			var e *projecterr.RepoParseError
			assert.ErrorAs(t, err, &e)
		}},
		{"https://gitlab.com/axo/demo", func(t *testing.T, err error) {
			var e *projecterr.UnsupportedRepoHostError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, "Only GitHub URLs are supported at the moment.", projecterr.Render(e).Help)
		}},
		{"gitlab:axo/demo", func(t *testing.T, err error) {
			var e *projecterr.UnsupportedRepoHostError
			assert.ErrorAs(t, err, &e)
		}},
		{"file:///srv/git/demo", func(t *testing.T, err error) {
			var e *projecterr.UnknownRepoStyleError
			assert.ErrorAs(t, err, &e)
		}},
		{"./relative/checkout", func(t *testing.T, err error) {
			var e *projecterr.UnknownRepoStyleError
			assert.ErrorAs(t, err, &e)
		}},
		{"https://github.com/a b/%zz", func(t *testing.T, err error) {
			var e *projecterr.URLParseError
			assert.ErrorAs(t, err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in, Options{})
			require.NotNil(t, err)
			tt.check(t, err)
		})
	}
}

func TestParseCustomHosts(t *testing.T) {
	got, err := Parse("https://codeberg.org/axo/demo", Options{Hosts: []string{"github.com", "codeberg.org"}})
	require.Nil(t, err)
	assert.Equal(t, "https://codeberg.org/axo/demo", got.WebURL())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Normalize("https://github.com/a/b"), Normalize(" git+https://github.com/a/b.git "))
	assert.Equal(t, Normalize("https://github.com/a/b"), Normalize("https://github.com/a/b/"))
	// NFC and NFD spellings of é compare equal
	assert.Equal(t, Normalize("https://github.com/caf\u00e9/x"), Normalize("https://github.com/cafe\u0301/x"))
	assert.NotEqual(t, Normalize("https://github.com/a/b"), Normalize("https://github.com/a/c"))
}
