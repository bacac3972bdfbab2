// Package diag defines the diagnostic model shared by the Fire front end.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1001, IO4001, PRJ5004, RES6001).
//   - Message – human oriented text; keep it short.
//   - Primary – source span of the offending text, when there is one.
//   - File / Pos – owned copies of the user-visible file path and 1-based
//     line/column, so the value stays valid after the producer is gone.
//   - Resource – namespace path for resource-table diagnostics.
//   - Notes – secondary locations ("first declared here").
//
// *Diagnostic implements error, so every phase can return it through the usual
// error channel; callers recover it with errors.As.
//
// Phases emit through a Reporter (BagReporter, FirstReporter, MultiReporter),
// usually via ReportError(...).At(...).WithNote(...).Emit(). Rendering lives in
// internal/diagfmt.
package diag
