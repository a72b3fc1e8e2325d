// Package server holds the HTTP server configuration.
//
// The serve command builds the fiber app; this package only defines the
// listen port, the API key guarding the routes and how many background jobs
// stay available for polling.
package server
