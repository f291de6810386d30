// Package password provides password hashing and verification for the student
// service.
//
// It implements bcrypt hashing (fixed work factor, per-call random salt) behind
// a bounded concurrency gate so that CPU-heavy hashing cannot head-of-line
// block the rest of the server under a login burst.
//
// Security notes:
// - Hash strings are treated as untrusted input during Verify.
// - A credential mismatch is a result (false, nil), never an error.
package password
