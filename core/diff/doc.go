// Package diff implements the key-based tabular comparison engine.
//
// Two tables are aligned on a key column and every key is classified into
// exactly one of four buckets:
//
//   - Identical: present in both tables, all common columns equal.
//   - Mismatches: present in both tables, at least one common column differs.
//   - NotInA: present in table B only (missing from A).
//   - NotInB: present in table A only (missing from B).
//
// # Requests
//
// A comparison is described by one of two request shapes: SourcesRequest
// (two separate files) or PartitionsRequest (two sheets of one workbook).
// Params is the flat form used by the CLI, HTTP API and batch manifests;
// Params.Resolve validates it and picks the shape.
//
// # Rules
//
// Only columns present by name in both tables are compared. Repeated keys
// keep their first row and the dropped rows are counted in
// Result.Duplicates. Two missing cells are equal. Every key list is sorted
// in natural key order so that equal inputs produce equal results.
//
// # Usage
//
//	engine := diff.NewEngine(source.NewFileLoader(client))
//	req, err := diff.Params{SourceA: "a.csv", SourceB: "b.csv", KeyColumn: "id", Kind: diff.KindDelimited}.Resolve()
//	res, err := engine.Compare(ctx, req)
//
//	// In the background
//	task := diff.Start(ctx, engine, req)
//	res, err = task.Wait()
//
// The engine never logs; callers decide how to present results and errors.
package diff
