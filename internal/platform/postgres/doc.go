// Package postgres provides PostgreSQL implementations of the store
// interfaces, plus shared helpers for translating database errors into the
// store error taxonomy.
package postgres
