// Package dataset holds the in-memory table produced by the loaders: an
// ordered set of uniquely named columns, each with a single inferred kind
// and a per-cell missing flag.
//
// A Dataset is built once from a header and raw string records and is
// read-only afterwards.
package dataset
