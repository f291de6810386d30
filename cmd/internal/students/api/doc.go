// Package studentapi wires the student REST endpoints to the session service.
//
// All routes live under /api/v1/students. Responses use a uniform envelope:
// {statusCode, data, message, success} on success and
// {statusCode, message, success:false} on failure. Protected routes resolve
// the caller through the access-token gate before touching any record.
package studentapi
