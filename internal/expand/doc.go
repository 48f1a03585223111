// Package expand rewrites generic test modules into concrete test code.
//
// A processing unit is a top-level inline module carrying the
// `#[generic_tests]` attribute. The engine classifies the unit's test
// functions, resolves elided lifetimes in their signatures, dedupes the
// resulting shapes into shared carrier types, and fills every
// `#[instantiate_tests(<...>)]` marker module with forwarding functions
// that call the generic originals through a typed shim. Everything the
// engine does not rewrite is copied from the input byte for byte.
//
// Diagnostics accumulate across the whole pass; a unit fails only after
// traversal completes, and a broken function or marker never stops its
// siblings from expanding.
package expand
