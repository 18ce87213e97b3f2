// Package trace records what a detection run did and how long it took.
//
// Enable it from the command line:
//
//	axoproject detect --trace=- --trace-level=detail .
//
// Tracers travel through the call chain in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDetector, "cargo", 0)
//	defer span.End("")
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelPhase: command boundaries
//   - LevelDetail: one span per ecosystem detector
//   - LevelDebug: everything, including manifest loads and tool runs
package trace
