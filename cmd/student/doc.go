// Package student implements the student identity foundation.
//
// It contains the persisted student record, the error taxonomy shared with the
// HTTP layer, and the store boundary with its MongoDB and in-memory
// implementations.
//
// This package is intentionally dependency-light and security-first: the
// password hash and the refresh-token slot never leave the store except through
// the full Student record, and only the sanitized View crosses the API boundary.
package student
