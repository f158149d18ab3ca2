// Package shared holds code used across tabinspect packages that belongs to
// no single layer.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler, a slog.Handler that records log records so tests
//     can assert on messages and attributes
//   - fixture writers for CSV text and Excel workbooks in a temporary
//     directory
//
// testutil must only be imported from _test.go files.
package shared
