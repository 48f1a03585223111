// Package ast defines the declaration tree the expansion engine operates
// on: modules, function signatures, attributes, and type expressions of the
// Rust-syntax test DSL.
//
// The tree is declaration-level only. Function bodies, where-clauses,
// attribute arguments, and const expressions are opaque byte ranges copied
// verbatim into the output; the engine never inspects them. Type
// expressions in test-function signatures are the one place the tree is
// fully structured, because lifetime resolution rewrites them and the
// signature catalog keys on their canonical rendering (see print.go).
//
// Nodes are plain pointers with a marker-method interface per category.
// Every node carries the source span it was parsed from so diagnostics can
// point back into the original file.
package ast
