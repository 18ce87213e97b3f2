package fuzztests

import "testing"

const maxFuzzInput = 16 << 10

var repoSeeds = []string{
	"https://github.com/axodotdev/axoproject",
	"https://github.com/axodotdev/axoproject.git",
	"git+https://github.com/axodotdev/axoproject.git",
	"git@github.com:axodotdev/axoproject.git",
	"ssh://git@github.com/axodotdev/axoproject",
	"github:axodotdev/axoproject",
	"axodotdev/axoproject",
	"https://gitlab.com/axo/demo",
	"ftp://github.com/a/b",
	"https://github.com/%zz",
	"",
	"::::",
}

var memberSeeds = []string{
	"dist:pkgA",
	"cargo:.",
	"npm:web/app",
	"dist:",
	"java:pkgC",
	"pkgB",
	":",
	"npm:::",
}

var cargoSeeds = []string{
	"[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
	"[package]\nversion = = 1\n",
	"[package\n",
	"name = \"unterminated\n",
	"[workspace]\nmembers = [\"a\", \"b\"\n",
	"\xff\xfe",
}

var changelogSeeds = []string{
	"# Changelog\n\n## Unreleased\n\n- wip\n\n## v1.0.0\n\n- first\n",
	"## 0.1.0 - 2024-01-01\nbody\n",
	"# Version 2.0.0-rc.1\n",
	"```\n## 1.0.0\n```\n",
	"",
}

func addSeeds(f *testing.F, seeds []string) {
	for _, s := range seeds {
		f.Add(s)
	}
}

func clampInput(s string) string {
	if len(s) > maxFuzzInput {
		return s[:maxFuzzInput]
	}
	return s
}
