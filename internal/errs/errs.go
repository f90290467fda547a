// Package errs defines the error types returned to API clients.
//
// Every error that leaves the service is shaped as an HTTPError so
// clients receive a consistent JSON schema: a machine-readable code,
// a human-readable message, optional field-level validation errors,
// and an optional follow-up action the client should take.
package errs
