// Package report renders inspection reports and inspection failures.
//
// The text renderer reproduces the sectioned console layout (DATASET
// INFORMATION, FIRST N ROWS, DATA TYPES, SUMMARY STATISTICS, MISSING
// VALUES). The JSON renderer writes one compact JSON document per line,
// suitable for jq or log shippers.
package report
