package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Cargo.toml", []byte("[package]"), 0)
	assert.Equal(t, FileID(0), id1)

	latest, ok := fs.GetLatest("Cargo.toml")
	require.True(t, ok)
	assert.Equal(t, id1, latest)

	id2 := fs.Add("Cargo.toml", []byte("[workspace]"), 0)
	assert.Equal(t, FileID(1), id2)

	latest, ok = fs.GetLatest("./Cargo.toml")
	require.True(t, ok)
	assert.Equal(t, id2, latest)

	// the superseded version is still addressable
	assert.Equal(t, "[package]", string(fs.Get(id1).Content))
	assert.Equal(t, 2, fs.Len())
}

func TestFileSet_GetUnknown(t *testing.T) {
	fs := NewFileSet()
	assert.Nil(t, fs.Get(3))
	start, end := fs.Resolve(Span{File: 3})
	assert.Equal(t, LineCol{}, start)
	assert.Equal(t, LineCol{}, end)
}

func TestFileSet_LoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBF{\r\n  \"name\": \"x\"\r\n}\r\n"), 0o600))

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	require.NoError(t, err)

	f := fs.Get(id)
	require.NotNil(t, f)
	assert.Equal(t, "{\n  \"name\": \"x\"\n}\n", string(f.Content))
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileNormalizedCRLF)
	assert.Equal(t, "package.json", f.FormatPath("relative", dir))
	assert.Equal(t, "package.json", f.FormatPath("basename", ""))

	got, ok := fs.GetByPath(path)
	require.True(t, ok)
	assert.Same(t, f, got)
}

func TestFileSet_LoadMissing(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_GetLineAndSlice(t *testing.T) {
	f := NewVirtualFile("dist.toml", []byte("[workspace]\nmembers = [\"x\"]\n"))

	assert.Equal(t, "[workspace]", f.GetLine(1))
	assert.Equal(t, "members = [\"x\"]", f.GetLine(2))
	assert.Equal(t, "", f.GetLine(3))
	assert.Equal(t, "", f.GetLine(4))
	assert.Equal(t, "", f.GetLine(0))

	assert.Equal(t, "members", f.Slice(Span{Start: 12, End: 19}))
	assert.Equal(t, "", f.Slice(Span{Start: 500, End: 600}))

	start, end := f.Resolve(Span{Start: 12, End: 19})
	assert.Equal(t, LineCol{Line: 2, Col: 1}, start)
	assert.Equal(t, LineCol{Line: 2, Col: 8}, end)
}

func TestFileSet_ConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fs.AddVirtual("virtual.toml", []byte("x = 1\n"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, fs.Len())
}
