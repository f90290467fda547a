// Package sqlerr normalizes database driver errors.
//
// It maps cryptic Postgres SQLSTATE codes into application-level
// categories and converts them into the errs.HTTPError shape, so a
// foreign key violation surfaces to the client as a friendly 400
// instead of a raw driver message.
package sqlerr
