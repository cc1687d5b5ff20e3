// Package database provides the Postgres connection pool holding archived
// stream records.
package database
