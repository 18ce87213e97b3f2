package detect

import (
	"fmt"
	"strings"

	"axoproject/internal/manifest"
)

// Registry is an ordered set of detectors; the order is the priority.
// Leaving a detector out is how an ecosystem is disabled.
type Registry struct {
	detectors []Detector
}

// NewRegistry creates a registry holding ds in priority order.
func NewRegistry(ds ...Detector) *Registry {
	r := &Registry{}
	for _, d := range ds {
		r.Register(d)
	}
	return r
}

// Register appends d with the lowest priority so far. A detector for an
// ecosystem that is already registered replaces the old one in place.
func (r *Registry) Register(d Detector) {
	for i, old := range r.detectors {
		if old.Ecosystem() == d.Ecosystem() {
			r.detectors[i] = d
			return
		}
	}
	r.detectors = append(r.detectors, d)
}

// Detectors returns the detectors in priority order.
func (r *Registry) Detectors() []Detector {
	if r == nil {
		return nil
	}
	return append([]Detector(nil), r.detectors...)
}

// Lookup returns the detector for eco.
func (r *Registry) Lookup(eco manifest.Ecosystem) (Detector, bool) {
	if r == nil {
		return nil, false
	}
	for _, d := range r.detectors {
		if d.Ecosystem() == eco {
			return d, true
		}
	}
	return nil, false
}

// Only returns a registry restricted to names, in the order given. Dist
// detectors in it resolve members through the restricted registry, so a
// left-out ecosystem stays disabled for members too.
func (r *Registry) Only(names ...string) (*Registry, error) {
	out := &Registry{}
	for _, n := range names {
		d, ok := r.Lookup(manifest.Ecosystem(n))
		if !ok {
			return nil, fmt.Errorf("unknown ecosystem %q (registered: %s)", n, strings.Join(r.names(), ", "))
		}
		if g, isDist := d.(*GenericDetector); isDist {
			d = NewGenericDetector(g.env, out)
		}
		out.Register(d)
	}
	return out, nil
}

func (r *Registry) names() []string {
	out := make([]string, 0, len(r.detectors))
	for _, d := range r.detectors {
		out = append(out, string(d.Ecosystem()))
	}
	return out
}

// Default returns cargo, npm and dist detectors in that order. The dist
// detector expands its members through the same registry.
func Default(env *Env) *Registry {
	r := &Registry{}
	r.Register(NewCargoDetector(env))
	r.Register(NewNpmDetector(env))
	r.Register(NewGenericDetector(env, r))
	return r
}
