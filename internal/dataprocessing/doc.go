// Package dataprocessing loads tabular files into datasets and summarises
// them.
//
// # Architecture
//
// The package has two components:
//
// 1. Loader: dispatches on the file extension and parses CSV files with
// encoding/csv or workbooks with excelize into a dataset.Dataset
// 2. Summarizer: computes describe-style statistics and missing-value
// counts for a dataset
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, dataprocessing.LoadOptions{})
//	ds, src, err := loader.Load(ctx, "Data/measurements.csv")
//	if err != nil {
//	    return err
//	}
//	summary := dataprocessing.NewSummarizer(logger).Summarize(ctx, ds)
//
// # Error Handling
//
// Every load failure is an AppError of type PARSING. Failures tied to a
// single record (a row with too many fields, undecodable bytes) carry the
// offending line number, retrievable with errors.Line.
package dataprocessing
