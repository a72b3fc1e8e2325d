// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the comparison routes.
//   - rayid: a request id stored in the context and echoed in the
//     X-Ray-ID response header, picked up by logger.WithRayID.
package middleware
