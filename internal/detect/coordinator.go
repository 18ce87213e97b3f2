package detect

import (
	"context"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"axoproject/internal/diag"
	"axoproject/internal/observ"
	"axoproject/internal/projecterr"
	"axoproject/internal/trace"
)

// Options configures Detect.
type Options struct {
	// Registry holds the enabled detectors. Nil means no detectors.
	Registry *Registry
	// Jobs bounds how many detectors run at once. 0 runs all of them
	// together; 1 runs them one by one and stops at the first root found.
	Jobs int
	// StopDir bounds the upward manifest search.
	StopDir string
	// Progress receives detector state changes. Optional.
	Progress ProgressSink
	// Timer records one phase per detector run. Optional.
	Timer *observ.Timer
	// Reporter receives the warnings of the detector that decided the
	// outcome. Warnings of the other detectors are dropped, as are all
	// warnings when Reporter is nil.
	Reporter diag.Reporter
}

// slotDiagnostics bounds the warnings buffered for one detector run.
const slotDiagnostics = 32

// Result is a successful detection.
type Result struct {
	Workspace *Workspace
	// Attempts holds every detector outcome in priority order. Detectors
	// skipped after an earlier root was found are absent.
	Attempts []projecterr.Attempt
}

// Detect runs the registered detectors on dir. On failure the error is a
// projecterr.ProjectError, unless ctx was cancelled.
func Detect(ctx context.Context, dir string, opts Options) (*Result, error) {
	span, ctx := trace.Start(ctx, trace.ScopeCommand, "detect")
	defer span.End("")

	detectors := opts.Registry.Detectors()
	attempts := make([]projecterr.Attempt, len(detectors))
	found := make([]*Workspace, len(detectors))
	warnings := make([]*diag.Bag, len(detectors))
	sink := opts.Progress
	if sink == nil {
		sink = nopSink{}
	}
	for _, d := range detectors {
		sink.OnEvent(Event{Ecosystem: d.Ecosystem(), Status: StatusQueued})
	}
	runOne := func(ctx context.Context, i int, d Detector) (projecterr.Attempt, *Workspace) {
		warnings[i] = diag.NewBag(slotDiagnostics)
		req := Request{Dir: dir, StopDir: opts.StopDir, Reporter: diag.BagReporter{Bag: warnings[i]}}
		return run(ctx, d, req, sink, opts.Timer)
	}

	if opts.Jobs == 1 {
		for i, d := range detectors {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			attempts[i], found[i] = runOne(ctx, i, d)
			if attempts[i].Found {
				for _, rest := range detectors[i+1:] {
					sink.OnEvent(Event{Ecosystem: rest.Ecosystem(), Status: StatusSkipped})
				}
				attempts = attempts[:i+1]
				break
			}
		}
	} else {
		jobs := opts.Jobs
		if jobs <= 0 || jobs > len(detectors) {
			jobs = len(detectors)
		}
		span.WithExtra("jobs", strconv.Itoa(jobs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(jobs, 1))
		for i, d := range detectors {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// each goroutine owns slot i, results stay in priority order
				attempts[i], found[i] = runOne(gctx, i, d)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if i := deciding(attempts); i >= 0 && opts.Reporter != nil {
		for _, w := range warnings[i].Items() {
			opts.Reporter.Report(w)
		}
	}

	winner, perr := projecterr.Aggregate(attempts)
	if perr != nil {
		span.WithExtra("outcome", perr.Code().ID())
		return nil, perr
	}
	span.WithExtra("outcome", string(attempts[winner].Ecosystem))
	return &Result{Workspace: found[winner], Attempts: attempts}, nil
}

// deciding returns the index of the attempt projecterr.Aggregate bases its
// outcome on: the first one that found a root. It is -1 when none did.
func deciding(attempts []projecterr.Attempt) int {
	return slices.IndexFunc(attempts, func(a projecterr.Attempt) bool { return a.Found })
}

func run(ctx context.Context, d Detector, req Request, sink ProgressSink, timer *observ.Timer) (projecterr.Attempt, *Workspace) {
	eco := d.Ecosystem()
	sink.OnEvent(Event{Ecosystem: eco, Status: StatusWorking})
	phase := timer.Begin(string(eco))
	start := time.Now()

	ws, ok, err := d.Detect(ctx, req)
	a := projecterr.Attempt{Ecosystem: string(eco), Found: ok}
	if err != nil {
		a.Err = err
	}

	status := outcomeStatus(ok, err != nil)
	timer.End(phase, string(status))
	sink.OnEvent(Event{Ecosystem: eco, Status: status, Elapsed: time.Since(start)})
	return a, ws
}
