// Package model defines the domain entities backing the relational
// schema: schools, users, students, classes, cases, assessments,
// activities, webinars, consents, and engagement tracking.
//
// Struct fields carry db tags for pgx row scanning and json tags for
// API serialization. Nullable columns map to pointer fields.
package model
