// Package compare exposes table comparisons to the CLI and over HTTP.
//
// The Service wraps a diff.Comparer with report delivery (local files or
// s3:// objects), optional run history and a registry of background jobs.
// Identical requests running at the same time share one execution.
//
// # Routes
//
//	POST /compare            run synchronously
//	POST /compare/jobs       run in the background, returns a job id
//	GET  /compare/jobs/:id   poll a job
//	GET  /compare/runs       list recorded runs
//	GET  /compare/runs/:id   get one run
//
// Errors map to statuses: invalid parameters 400, missing key column or no
// shared columns 422, unreadable sources 502.
package compare
