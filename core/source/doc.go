// Package source loads comparison inputs into tabular tables.
//
// FileLoader reads local files or "s3://bucket/key" objects and parses them
// as spreadsheets (one sheet per load) or delimited text. It satisfies
// diff.Loader and reports every failure as a *diff.SourceLoadError.
package source
