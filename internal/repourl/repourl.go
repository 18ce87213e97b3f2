// Package repourl turns the free-form "repository" values found in manifests
// into a host/owner/name triple.
package repourl

import (
	"net/url"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"golang.org/x/text/unicode/norm"

	"axoproject/internal/projecterr"
)

// DefaultHosts is used when Options.Hosts is empty.
var DefaultHosts = []string{"github.com"}

var shorthandHosts = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

// Options configures Parse.
type Options struct {
	// Hosts lists the accepted hosts. Empty means DefaultHosts.
	Hosts []string
}

func (o Options) hosts() []string {
	if len(o.Hosts) == 0 {
		return DefaultHosts
	}
	return o.Hosts
}

// Repo identifies a repository on a forge.
type Repo struct {
	Host  string
	Owner string
	Name  string
}

// WebURL returns the browsable https URL of the repository.
func (r Repo) WebURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Name
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// Parse classifies raw. Grammar failures are forwarded as URL parse errors;
// URLs that are not git remotes or are on other hosts get their own errors.
func Parse(raw string, opts Options) (Repo, projecterr.LeafError) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	if s == "" {
		return Repo{}, &projecterr.RepoParseError{Repo: raw}
	}

	host, path, lerr := split(raw, s)
	if lerr != nil {
		return Repo{}, lerr
	}
	host = strings.ToLower(host)
	if !slices.Contains(opts.hosts(), host) {
		return Repo{}, &projecterr.UnsupportedRepoHostError{URL: raw, Hosts: opts.Hosts}
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return Repo{}, &projecterr.RepoParseError{Repo: raw}
	}
	name := strings.TrimSuffix(segs[1], ".git")
	if name == "" {
		return Repo{}, &projecterr.RepoParseError{Repo: raw}
	}
	return Repo{Host: host, Owner: segs[0], Name: name}, nil
}

func split(raw, s string) (host, path string, lerr projecterr.LeafError) {
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		if h, known := shorthandHosts[prefix]; known && !strings.HasPrefix(rest, "//") {
			return h, rest, nil
		}
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", "", projecterr.FromURLParse(err)
		}
		switch u.Scheme {
		case "https", "http", "ssh", "git":
		default:
			return "", "", &projecterr.UnknownRepoStyleError{URL: raw}
		}
		if u.Hostname() == "" {
			return "", "", &projecterr.RepoParseError{Repo: raw}
		}
		return u.Hostname(), u.Path, nil
	}

	ep, err := transport.NewEndpoint(s)
	if err != nil {
		return "", "", projecterr.FromURLParse(err)
	}
	if ep.Protocol == "file" {
		// "owner/name" is the npm shorthand for GitHub
		if isShorthand(s) {
			return "github.com", s, nil
		}
		return "", "", &projecterr.UnknownRepoStyleError{URL: raw}
	}
	return ep.Host, ep.Path, nil
}

func isShorthand(s string) bool {
	owner, name, ok := strings.Cut(s, "/")
	return ok && owner != "" && name != "" &&
		!strings.ContainsAny(owner, ".~") && !strings.Contains(name, "/")
}

// Normalize returns the key used to compare two repository values.
func Normalize(raw string) string {
	s := norm.NFC.String(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "git+")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")
	return s
}
