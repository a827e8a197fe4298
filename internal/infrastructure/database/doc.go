// Package database opens the Hostwarden SQLite database and applies
// embedded schema migrations.
//
// The pool is pinned to a single connection: the auth core serializes
// every operation behind one exclusive lock, so additional connections
// would only add lock-contention failure modes without adding
// concurrency.
package database
