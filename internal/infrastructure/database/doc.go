// Package database manages the SQLite connection for the profiles store.
//
// It wraps database/sql with the settings that make SQLite behave well in a
// single-writer tool: WAL mode, a busy timeout, restrictive file
// permissions, and a single connection. The profiles schema itself lives in
// package profile; this package only provides the connection.
package database
