// Package inspector loads tabular files and produces inspection reports.
//
// Inspect returns a structured report or a typed error (NotFound,
// UnsupportedFormat or ParseFailure from internal/errors). Run is the
// print-only entry point used by the CLI: it inspects every path, renders
// each report or failure in argument order and never fails because of an
// inspection error.
//
// Inspections of different files run concurrently up to MaxParallel; a
// single inspection is synchronous.
package inspector
