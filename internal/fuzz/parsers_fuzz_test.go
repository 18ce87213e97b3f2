package fuzztests

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"axoproject/internal/changelog"
	"axoproject/internal/manifest"
	"axoproject/internal/projecterr"
	"axoproject/internal/repourl"
	"axoproject/internal/source"
	"axoproject/internal/testkit"
)

func checkRendered(t *testing.T, err error) {
	t.Helper()
	if cerr := testkit.CheckDiagnostic(projecterr.Render(err)); cerr != nil {
		t.Fatalf("bad diagnostic for %v: %v", err, cerr)
	}
}

func FuzzRepoURL(f *testing.F) {
	addSeeds(f, repoSeeds)
	f.Fuzz(func(t *testing.T, raw string) {
		raw = clampInput(raw)
		repo, err := repourl.Parse(raw, repourl.Options{})
		if err != nil {
			checkRendered(t, err)
			return
		}
		if repo.Owner == "" || repo.Name == "" || repo.Host == "" {
			t.Fatalf("Parse(%q) = %+v", raw, repo)
		}
		if !plainSegment(repo.Owner) || !plainSegment(repo.Name) {
			return
		}
		// a parsed repository parses back to itself
		again, err := repourl.Parse(repo.WebURL(), repourl.Options{Hosts: []string{repo.Host}})
		if err != nil || again != repo {
			t.Fatalf("round trip of %q: %+v, %v", raw, again, err)
		}
	})
}

func plainSegment(s string) bool {
	return strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-") == ""
}

func FuzzMember(f *testing.F) {
	addSeeds(f, memberSeeds)
	f.Fuzz(func(t *testing.T, entry string) {
		entry = clampInput(entry)
		m, err := manifest.ParseMember(entry)
		if err != nil {
			checkRendered(t, err)
			if err.Entry() != entry {
				t.Fatalf("Entry() = %q, want %q", err.Entry(), entry)
			}
			return
		}
		if m.Path == "" {
			t.Fatalf("ParseMember(%q) returned an empty path", entry)
		}
	})
}

func FuzzCargoTomlError(f *testing.F) {
	addSeeds(f, cargoSeeds)
	f.Fuzz(func(t *testing.T, text string) {
		text = clampInput(text)
		var v map[string]any
		_, err := toml.Decode(text, &v)
		if err == nil {
			return
		}
		file := source.NewVirtualFile("Cargo.toml", []byte(text))
		perr := projecterr.EnrichCargoToml(file, err)
		if perr.Span != nil && !perr.Span.Within(file.Size()) {
			t.Fatalf("span %v outside %d bytes", *perr.Span, file.Size())
		}
		checkRendered(t, perr)
	})
}

func FuzzChangelog(f *testing.F) {
	addSeeds(f, changelogSeeds)
	f.Fuzz(func(t *testing.T, text string) {
		text = clampInput(text)
		cl, err := changelog.Parse([]byte(text))
		if err != nil {
			checkRendered(t, projecterr.FromChangelogParse(err))
			return
		}
		for _, r := range cl.Releases {
			got, ok := cl.Find(r.Version)
			if !ok || got.Version == "" {
				t.Fatalf("release %q not found again", r.Version)
			}
		}
	})
}
