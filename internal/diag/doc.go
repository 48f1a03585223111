// Package diag defines the diagnostic model shared by all phases of the
// expansion pipeline.
//
// Diagnostic is the central record: severity, a compact numeric Code with a
// stable string form, a human message, the primary source.Span, and optional
// notes. Producers emit through a Reporter (decoupled from storage) or
// accumulate directly into a Bag.
//
// The Bag is the error aggregator: phases keep recording independent
// failures and continue working; only after a complete pass does the caller
// inspect the bag and fail the unit with every diagnostic surfaced together.
// Nothing is retried and nothing is silently dropped.
//
// Rendering lives in internal/diagfmt; this package performs no formatting
// or IO, and its data model stays deterministic so diagnostics can be
// serialised for caching and golden tests.
package diag
