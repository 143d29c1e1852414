// Package repositories implements SQLite persistence for client-side state.
//
// The client owns very little durable data; the server is the source of truth for everything else:
//   - [ClientStateRepository] : a key-value table. The session identity is stored under [SessionKey].
//   - [BookingRepository] : a per-user cache of the last fetched booking history, for offline listing.
//
// [ClientStateRepository.Bind] returns a [KeyStore] that satisfies the session package's Store interface.
//
// Schemas are created by the migrations in the shared package.
package repositories
