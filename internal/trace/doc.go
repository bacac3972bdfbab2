// Package trace records phase and per-file spans of a Fire build.
//
// Enable it from the command line:
//
//	fire build --trace=- --trace-level=file ./game
//
// Tracers:
//
//   - Nop: disabled tracing, no overhead
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when a build fails
//   - MultiTracer: fan-out
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "discover")
//	defer span.End("")
package trace
