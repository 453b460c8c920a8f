// Package database provides connection management for MySQL, PostgreSQL and
// SQLite, the transactional session scope, store error classification,
// migrations, foreign key handling, SQL seed files, logging and health
// checks, built on top of Bun.
package database
