// Package changelog finds release notes in a Markdown changelog.
package changelog

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"axoproject/internal/projecterr"
)

// Unreleased is the version key of an "Unreleased" section.
const Unreleased = "Unreleased"

var versionRe = regexp.MustCompile(`\bv?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?)`)

// Release is one versioned section of a changelog.
type Release struct {
	Version string
	Title   string
	Body    string
}

// Changelog is a parsed changelog, releases in document order.
type Changelog struct {
	Releases []Release
}

// ParseError reports a document with no release headings.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "failed to parse changelog: " + e.Reason }

type heading struct {
	version   string
	title     string
	lineStart int
	bodyStart int
}

// Parse reads release sections out of src. Any heading that names a version
// or "Unreleased" starts a section; the section runs to the next one.
func Parse(src []byte) (*Changelog, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var heads []heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		title := headingText(h, src)
		version := versionOf(title)
		if version == "" || h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)
		heads = append(heads, heading{
			version:   version,
			title:     title,
			lineStart: lineStart(src, first.Start),
			bodyStart: lineEnd(src, last.Stop),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	if len(heads) == 0 {
		return nil, &ParseError{Reason: "no release headings found"}
	}

	out := &Changelog{Releases: make([]Release, 0, len(heads))}
	for i, h := range heads {
		end := len(src)
		if i+1 < len(heads) {
			end = heads[i+1].lineStart
		}
		body := ""
		if h.bodyStart < end {
			body = strings.TrimSpace(string(src[h.bodyStart:end]))
		}
		out.Releases = append(out.Releases, Release{Version: h.version, Title: h.title, Body: body})
	}
	return out, nil
}

// Find returns the release for version. A leading "v" is ignored.
func (c *Changelog) Find(version string) (Release, bool) {
	want := strings.TrimPrefix(strings.TrimSpace(version), "v")
	for _, r := range c.Releases {
		if strings.EqualFold(r.Version, want) {
			return r, true
		}
	}
	return Release{}, false
}

// Lookup reads the changelog at path and returns the section for version.
func Lookup(path, version string) (Release, projecterr.LeafError) {
	// #nosec G304 -- path is provided by the caller
	src, err := os.ReadFile(path)
	if err != nil {
		return Release{}, projecterr.FromAsset(err)
	}
	log, err := Parse(src)
	if err != nil {
		return Release{}, projecterr.FromChangelogParse(err)
	}
	rel, ok := log.Find(version)
	if !ok {
		return Release{}, &projecterr.ChangelogVersionNotFoundError{Path: path, Version: version}
	}
	return rel, nil
}

func versionOf(title string) string {
	if m := versionRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if strings.Contains(strings.ToLower(title), "unreleased") {
		return Unreleased
	}
	return ""
}

func headingText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func lineStart(src []byte, at int) int {
	if i := bytes.LastIndexByte(src[:at], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

func lineEnd(src []byte, at int) int {
	if at >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[at:], '\n'); i >= 0 {
		return at + i + 1
	}
	return len(src)
}
