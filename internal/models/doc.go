// Package models defines the data exchanged with the remote booking API.
//
// Every type here is server owned except [Identity], which the client persists verbatim as its session:
//   - [Identity] : the authenticated user, kept as raw JSON so restore round-trips unknown fields
//   - [Movie] : a listed movie
//   - [Show] : one screening with its seat inventory snapshot
//   - [Seat] : a bookable unit, Available or Booked
//   - [Booking] : a booking record from the history endpoint
//
// All responses are wrapped in an [Envelope] of the form {success, data?, message?}.
// Identifiers are [ID] values, accepting JSON strings or numbers since the API is not consistent about either.
// Money uses [decimal.Decimal].
package models
