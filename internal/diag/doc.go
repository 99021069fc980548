// Package diag defines the diagnostic model shared by all pipeline stages.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the annotation parser, range validator, expander and emitter.
//   - Offer light-weight utilities (Reporter, Bag) that let stages emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes must add new context (e.g. “range declared here”) rather than repeat
// the diagnostic message. An overlap report, for instance, points its primary
// span at one variant and attaches the other contributor as a note.
//
// # Emitting diagnostics
//
// Stages use a diag.Reporter to decouple emission from storage, typically via
// ReportError(...).WithNote(...).Emit(). BagReporter aggregates diagnostics
// into a Bag, which supports sorting, deduplication and error queries.
//
// Every error is fatal to the declaration being expanded: the driver stops the
// pipeline after the first stage that leaves errors in the bag. There is no
// partial expansion and no recovery.
package diag
