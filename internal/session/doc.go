// Package session holds the authenticated identity for the lifetime of the process and keeps it in sync with a
// durable [Store].
//
// The identity is opaque: the client never inspects expiry or signatures. Being logged in means an identity is
// present and nothing more.
//
// Stores:
//   - the SQLite client_state table, via the repositories package (default)
//   - [FileStore] : a JSON file under the user config dir
//   - [MemoryStore] : in-process only
package session
