package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for the axoproject CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders v with one color per component. Pre-release and build
// suffixes stay uncolored; anything that is not MAJOR.MINOR.PATCH is
// returned as is.
func Colored(v string, enable bool) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	colors := []*color.Color{majorColor, minorColor, patchColor}
	for i, c := range colors {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		parts[i] = c.Sprint(parts[i])
	}
	return strings.Join(parts, ".") + suffix
}

// String is the one-line description printed by `axoproject version`.
func String(enable bool) string {
	var b strings.Builder
	b.WriteString("axoproject ")
	b.WriteString(Colored(Version, enable))
	if GitCommit != "" {
		b.WriteString(" (")
		b.WriteString(GitCommit)
		if BuildDate != "" {
			b.WriteString(" ")
			b.WriteString(BuildDate)
		}
		b.WriteString(")")
	}
	return b.String()
}
