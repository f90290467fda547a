// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL away from the service layer. Row scanning goes
// through pgx's RowToStructByName against the model structs' db tags.
//
// Repositories wrap pgx.ErrNoRows with a "table:<name>:" marker so the
// global error funnel can turn it into a 404 naming the entity.
package repository
