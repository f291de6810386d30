// Package app assembles the student fees service: configuration, logging,
// storage selection, the session layer and the HTTP server with its
// middleware chain.
package app
