// Package storage defines the persistence interfaces for the web gateway.
//
// It abstracts the two read models the request path depends on: portal
// profiles (who owns which tenant slice) and shareable content (token-scoped
// public records). The SQLite implementation lives in the sqlite subpackage.
//
// Implementations return ErrNotFound for missing records so callers can fail
// closed without inspecting driver errors.
package storage
