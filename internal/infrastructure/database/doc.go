// Package database provides the SQLite connection and schema migrations
// for WardCall Core.
//
// The nurse roster and call-record audit tables live here; the open-call
// state itself is in-memory only and never persisted.
package database
